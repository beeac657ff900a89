package browser

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"githelper.dev/githelper/internal/output"
)

// Kind classifies a listing entry
type Kind int

const (
	KindBack Kind = iota
	KindParent
	KindDir
	KindFile
)

// Entry is one numbered line of a listing
type Entry struct {
	Index int
	Name  string
	Path  string
	Kind  Kind
}

// Listing is the numbered view of one directory
type Listing struct {
	Dir     string
	Entries []Entry
}

// List reads dir and numbers its entries: 0 back, 1 parent, then subdirectories and
// regular files, each group sorted by name. Hidden entries are skipped and symlinks
// are classified by their target.
func List(dir string) (Listing, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return Listing{}, err
	}
	entries, err := os.ReadDir(abs)
	if err != nil {
		return Listing{}, fmt.Errorf("failed to read %s: %w", abs, err)
	}

	var dirs, files []string
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		info, err := os.Stat(filepath.Join(abs, name))
		if err != nil {
			// dangling symlink
			continue
		}
		switch {
		case info.IsDir():
			dirs = append(dirs, name)
		case info.Mode().IsRegular():
			files = append(files, name)
		}
	}
	sort.Strings(dirs)
	sort.Strings(files)

	listing := Listing{
		Dir: abs,
		Entries: []Entry{
			{Index: 0, Name: "Back", Kind: KindBack},
			{Index: 1, Name: "..", Path: filepath.Dir(abs), Kind: KindParent},
		},
	}
	for _, name := range dirs {
		listing.add(name, KindDir)
	}
	for _, name := range files {
		listing.add(name, KindFile)
	}
	return listing, nil
}

func (l *Listing) add(name string, kind Kind) {
	l.Entries = append(l.Entries, Entry{
		Index: len(l.Entries),
		Name:  name,
		Path:  filepath.Join(l.Dir, name),
		Kind:  kind,
	})
}

// Names returns entry names in index order, without the back entry
func (l Listing) Names() []string {
	names := make([]string, 0, len(l.Entries))
	for _, e := range l.Entries[1:] {
		names = append(names, e.Name)
	}
	return names
}

// Lookup resolves a typed index
func (l Listing) Lookup(answer string) (Entry, bool) {
	idx, err := strconv.Atoi(strings.TrimSpace(answer))
	if err != nil || idx < 0 || idx >= len(l.Entries) {
		return Entry{}, false
	}
	return l.Entries[idx], true
}

// Render writes the numbered listing
func (l Listing) Render(w io.Writer) {
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, output.Title("📂 "+l.Dir))
	_, _ = fmt.Fprintln(w)
	for _, e := range l.Entries {
		label := e.Name
		switch e.Kind {
		case KindParent:
			label = ".. (parent folder)"
		case KindDir:
			label = e.Name + "/"
		}
		_, _ = fmt.Fprintf(w, "%s %s\n", output.Key(fmt.Sprintf("%2d)", e.Index)), label)
	}
	_, _ = fmt.Fprintln(w)
}
