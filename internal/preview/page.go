package preview

import (
	"html/template"
	"net/http"
	"strings"

	"github.com/ziadkadry99/sidenav/internal/render"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Name}} - sidenav preview</title>
<style>
body { font-family: system-ui, sans-serif; margin: 0; display: flex; }
nav { width: 320px; padding: 1rem; border-right: 1px solid #ddd; height: 100vh; overflow-y: auto; box-sizing: border-box; }
nav ul { list-style: none; padding-left: 1rem; margin: 0; }
nav > ul { padding-left: 0; }
nav li.dir > ul { display: none; }
nav li.dir.expanded > ul { display: block; }
nav .dir-toggle { cursor: pointer; font-weight: 600; display: block; padding: 2px 0; }
nav a { color: #1a5fb4; text-decoration: none; display: block; padding: 2px 0; }
nav a.active { font-weight: 700; color: #000; }
nav li.link a::after { content: " \2197"; }
main { padding: 1rem 2rem; }
#status { font-size: 0.85rem; color: #666; }
#status.error { color: #c01c28; white-space: pre-wrap; }
</style>
</head>
<body>
<nav>{{.Nav}}</nav>
<main>
<h1>{{.Name}}</h1>
<p>Sidebars: {{range $i, $n := .Names}}{{if $i}}, {{end}}<a href="?sidebar={{$n}}">{{$n}}</a>{{end}}</p>
{{if .Active}}<p>Viewing <code>{{.Active}}</code></p>{{end}}
<p id="status">Watching for changes.</p>
</main>
<script>
document.querySelectorAll("nav span.dir-toggle").forEach(function (el) {
  el.addEventListener("click", function () { el.parentElement.classList.toggle("expanded"); });
});
(function connect() {
  var ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws");
  var status = document.getElementById("status");
  ws.onmessage = function (ev) {
    var msg = JSON.parse(ev.data);
    if (msg.type === "reload") { location.reload(); }
    if (msg.type === "error") { status.className = "error"; status.textContent = msg.message; }
  };
  ws.onclose = function () { setTimeout(connect, 1000); };
})();
</script>
</body>
</html>
`))

type pageData struct {
	Name   string
	Names  []string
	Active string
	Nav    template.HTML
}

// handleIndex renders a sidebar as navigation. ?sidebar= picks the sidebar
// and ?doc= marks the active document.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	file := s.File()
	name := r.URL.Query().Get("sidebar")
	if name == "" {
		name = s.cfg.DefaultSidebar
	}
	sb, ok := file.Sidebar(name)
	if !ok && len(file.Sidebars) > 0 && r.URL.Query().Get("sidebar") == "" {
		sb, ok = file.Sidebars[0], true
	}
	if !ok {
		http.Error(w, "unknown sidebar "+name, http.StatusNotFound)
		return
	}

	active := r.URL.Query().Get("doc")
	nav, err := render.HTML(sb.Items, render.Options{
		ActiveDoc: active,
		Content:   s.cfg.Content,
		DocHref: func(id string) string {
			return "?sidebar=" + sb.Name + "&doc=" + id
		},
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var b strings.Builder
	err = pageTemplate.Execute(&b, pageData{
		Name:   sb.Name,
		Names:  file.Names(),
		Active: active,
		Nav:    template.HTML(nav),
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(b.String()))
}
