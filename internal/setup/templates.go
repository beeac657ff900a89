package setup

import (
	"bytes"
	"embed"
	"strings"
	"text/template"
	"time"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"quote": shellQuote,
}).ParseFS(templateFS, "templates/*.tmpl"))

// templateData is shared by the README and device script templates
type templateData struct {
	Name        string
	Email       string
	User        string
	Repo        string
	Host        string
	Branch      string
	Remote      string
	Folder      string
	KeyPath     string
	KeyType     string
	SettingsURL string
	Created     time.Time
}

func render(name string, data templateData) ([]byte, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// shellQuote double-quotes s for bash. A leading ~/ becomes $HOME/ so the path
// expands on the device rather than on the machine that generated the script.
func shellQuote(s string) string {
	prefix := ""
	if s == "~" || strings.HasPrefix(s, "~/") {
		prefix = "$HOME"
		s = strings.TrimPrefix(s, "~")
	}
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "$", `\$`, "`", "\\`")
	return `"` + prefix + r.Replace(s) + `"`
}
