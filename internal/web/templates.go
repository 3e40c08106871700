package web

import (
	"html/template"

	"github.com/nextgen-ti/kbportal/internal/catalog"
	"github.com/nextgen-ti/kbportal/internal/report"
)

var templateFuncs = template.FuncMap{
	"fieldError": func(e *report.ValidationError, field string) string {
		if e == nil {
			return ""
		}
		return e.Message(field)
	},
	"urgencyClass": func(u catalog.Urgency) string {
		return "urgency-" + u.String()
	},
}

// pageTemplate is the single portal page. Which section renders depends on
// the session's active screen.
const pageTemplate = `<!DOCTYPE html>
<html lang="es">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>NEXTGEN-TI · Base de Conocimiento Técnica</title>
  <style>` + cssContent + `</style>
</head>
<body>
<div class="app-container">
  <aside class="sidebar">
    <form method="post" action="/actions/reset" class="brand">
      <button type="submit" class="link">
        <h2 class="gradient-text">NEXTGEN-TI</h2>
        <p class="muted small">Base de Conocimiento Técnica</p>
      </button>
    </form>
    <nav>
      <p class="nav-title">Categorías</p>
      <ul class="categories">
        <li>
          <form method="post" action="/actions/category">
            <input type="hidden" name="category" value="">
            <button type="submit" class="link{{if not .View.Category}} selected{{end}}">Todas</button>
          </form>
        </li>
        {{range .View.Categories}}
        <li>
          <form method="post" action="/actions/category">
            <input type="hidden" name="category" value="{{.ID}}">
            <button type="submit" class="link{{if .Selected}} selected{{end}}">{{.Label}} <span class="count">{{.Count}}</span></button>
          </form>
        </li>
        {{end}}
      </ul>
      <form method="post" action="/actions/navigate">
        <input type="hidden" name="screen" value="report">
        <button type="submit" class="btn-primary wide">Reportar Incidencia</button>
      </form>
      <ul class="screens">
        {{range .Nav}}
        <li>
          <form method="post" action="/actions/navigate">
            <input type="hidden" name="screen" value="{{.Screen}}">
            <button type="submit" class="link{{if .Active}} selected{{end}}">{{.Label}}</button>
          </form>
        </li>
        {{end}}
      </ul>
    </nav>
  </aside>

  <main class="main-content">
    <header>
      <form method="post" action="/actions/search" class="search">
        <input type="text" name="q" class="form-control" placeholder="Buscar soluciones, problemas..." value="{{.View.Query}}">
      </form>
    </header>

    {{with .Flash}}
    <div class="flash" role="status">{{.Message}} <span class="muted">Referencia: {{.Reference}}</span></div>
    {{end}}

    {{if eq .View.Screen "listing"}}
    <section id="listing">
      <h2>{{.View.Heading}}</h2>
      {{if .View.Empty}}
      <div class="empty">No se encontraron artículos que coincidan con la búsqueda.</div>
      {{else}}
      <div class="grid">
        {{range .View.Articles}}
        <form method="post" action="/actions/select" class="card">
          <input type="hidden" name="id" value="{{.ID}}">
          <div class="card-head">
            <span class="category">{{.Category.Label}}</span>
            <span class="badge {{urgencyClass .Urgency}}">{{.Urgency.Label}}</span>
          </div>
          <h3>{{.Title}}</h3>
          <p class="muted">{{.Description}}</p>
          <button type="submit" class="link accent">Ver solución →</button>
        </form>
        {{end}}
      </div>
      {{end}}
    </section>
    {{end}}

    {{if eq .View.Screen "article"}}{{with .View.Article}}
    <article id="article"{{if $.View.ScrollToTop}} data-scroll-top="true"{{end}}>
      <form method="post" action="/actions/navigate">
        <input type="hidden" name="screen" value="listing">
        <button type="submit" class="link muted">← Volver al listado</button>
      </form>
      <div class="badges">
        <span class="pill">{{.Category.Label}}</span>
        <span class="pill {{urgencyClass .Urgency}}">{{.Urgency.Label}}</span>
      </div>
      <div class="article-body">{{$.ArticleHTML}}</div>
      <form method="post" action="/actions/navigate" class="escalate">
        <input type="hidden" name="screen" value="report">
        <button type="submit" class="btn-primary">Reportar si persiste</button>
      </form>
    </article>
    {{end}}{{end}}

    {{if eq .View.Screen "report"}}
    <section id="report">
      <form method="post" action="/actions/navigate">
        <input type="hidden" name="screen" value="listing">
        <button type="submit" class="link muted">← Cancelar</button>
      </form>
      <h2>Formulario de Contacto y Reportes</h2>
      <form method="post" action="/actions/report" class="panel" novalidate>
        <div class="two-col">
          <div class="form-group">
            <label for="full_name">Nombre Completo</label>
            <input id="full_name" name="full_name" type="text" class="form-control" placeholder="Ej. Juan Pérez" value="{{.Report.Form.FullName}}" required>
            {{with fieldError .Report.Errors "full_name"}}<p class="field-error">{{.}}</p>{{end}}
          </div>
          <div class="form-group">
            <label for="email">Correo Electrónico</label>
            <input id="email" name="email" type="email" class="form-control" placeholder="juan@empresa.com" value="{{.Report.Form.Email}}" required>
            {{with fieldError .Report.Errors "email"}}<p class="field-error">{{.}}</p>{{end}}
          </div>
        </div>
        <div class="form-group">
          <label for="type">Tipo de Incidencia</label>
          <select id="type" name="type" class="form-control">
            {{range .Report.Types}}<option{{if eq . $.Report.Form.Type}} selected{{end}}>{{.}}</option>{{end}}
          </select>
          {{with fieldError .Report.Errors "type"}}<p class="field-error">{{.}}</p>{{end}}
        </div>
        <div class="form-group">
          <label for="subject">Asunto</label>
          <input id="subject" name="subject" type="text" class="form-control" placeholder="Breve descripción del problema" value="{{.Report.Form.Subject}}" required>
          {{with fieldError .Report.Errors "subject"}}<p class="field-error">{{.}}</p>{{end}}
        </div>
        <div class="form-group">
          <label for="description">Descripción Detallada</label>
          <textarea id="description" name="description" class="form-control" placeholder="Describe los síntomas y lo que has intentado hasta ahora..." required>{{.Report.Form.Description}}</textarea>
          {{with fieldError .Report.Errors "description"}}<p class="field-error">{{.}}</p>{{end}}
        </div>
        <div class="form-group">
          <label>Nivel de Urgencia</label>
          <div class="radios">
            {{range .Report.Urgencies}}
            <label><input type="radio" name="urgency" value="{{.}}"{{if eq . $.Report.Form.Urgency}} checked{{end}}> {{.Label}}</label>
            {{end}}
          </div>
          {{with fieldError .Report.Errors "urgency"}}<p class="field-error">{{.}}</p>{{end}}
        </div>
        <button type="submit" class="btn-primary wide">Enviar Reporte</button>
      </form>
    </section>
    {{end}}

    {{if eq .View.Screen "about"}}
    <section id="about" class="panel">
      <h2>Acerca de</h2>
      <p>La Base de Conocimiento Técnica de NEXTGEN-TI reúne guías de autoservicio para los problemas más frecuentes de equipos, aplicaciones, red y accesos.</p>
      <p class="muted">Si una guía no resuelve tu caso, usa "Reportar Incidencia" y Soporte Técnico Nivel 1 te contactará.</p>
    </section>
    {{end}}

    {{if eq .View.Screen "diagnostics"}}
    <section id="diagnostics" class="panel">
      <h2>Diagnóstico</h2>
      <ol>
        <li>Reinicia el equipo y verifica si el problema persiste.</li>
        <li>Comprueba la conexión de red: cable, Wi-Fi o VPN.</li>
        <li>Cierra las aplicaciones que no uses si notas lentitud.</li>
        <li>Anota el mensaje de error exacto antes de reportar.</li>
      </ol>
    </section>
    {{end}}

    {{if eq .View.Screen "legal"}}
    <section id="legal" class="panel">
      <h2>Legal</h2>
      <p>El tratamiento de los datos ingresados en este portal se rige por la Ley de Protección de Datos Personales y la política de uso aceptable de NEXTGEN-TI.</p>
      <p class="muted">Los reportes enviados no se almacenan en este portal.</p>
    </section>
    {{end}}

    {{if eq .View.Screen "survey"}}
    <section id="survey" class="panel">
      <h2>Encuesta de Satisfacción</h2>
      <p>Tu opinión nos ayuda a mejorar el servicio.</p>
      {{if .SurveyURL}}<a class="btn-primary" href="{{.SurveyURL}}" target="_blank" rel="noopener">Responder encuesta</a>{{end}}
    </section>
    {{end}}

    {{if eq .View.Screen "chat"}}
    <section id="chat" class="panel">
      <h2>Asistente Virtual</h2>
      <div class="transcript" id="transcript">
        {{range .Transcript}}
        <div class="msg msg-{{.Role}}">{{.Text}}</div>
        {{else}}
        <div class="muted">Escribe tu consulta para comenzar.</div>
        {{end}}
      </div>
      <div class="typing" id="typing"{{if not .Typing}} hidden{{end}}>El asistente está escribiendo...</div>
      <form method="post" action="/actions/chat" class="chat-input" id="chat-form">
        <input type="text" name="message" class="form-control" placeholder="Escribe tu mensaje..." autocomplete="off">
        <button type="submit" class="btn-primary">Enviar</button>
      </form>
    </section>
    <script>` + chatScript + `</script>
    {{end}}
  </main>
</div>
{{if .View.ScrollToTop}}<script>window.scrollTo(0, 0);</script>{{end}}
</body>
</html>`

const cssContent = `
:root {
  --bg: #0f172a; --panel: rgba(30, 41, 59, 0.7); --text-primary: #f1f5f9; --text-secondary: #94a3b8;
  --accent-primary: #38bdf8; --urgency-low: #22c55e; --urgency-medium: #eab308;
  --urgency-high: #f97316; --urgency-critical: #ef4444;
}
* { box-sizing: border-box; margin: 0; }
body { background: var(--bg); color: var(--text-primary); font-family: system-ui, sans-serif; }
.app-container { display: flex; min-height: 100vh; }
.sidebar { width: 280px; padding: 2rem 1.5rem; background: var(--panel); }
.main-content { flex: 1; padding: 2rem 3rem; }
.gradient-text { color: var(--accent-primary); }
.muted { color: var(--text-secondary); }
.small { font-size: 0.8rem; }
.nav-title { color: var(--text-secondary); font-size: 0.7rem; text-transform: uppercase; letter-spacing: 1px; margin: 2rem 0 1rem; }
ul { list-style: none; padding: 0; }
.categories li, .screens li { margin-bottom: 0.5rem; }
.screens { margin-top: 2rem; }
.link { background: none; border: none; color: inherit; cursor: pointer; font: inherit; text-align: left; padding: 4px 0; }
.link.selected, .accent { color: var(--accent-primary); }
.count { color: var(--text-secondary); font-size: 0.75rem; }
.btn-primary { background: var(--accent-primary); color: #0f172a; border: none; border-radius: 8px; padding: 10px 16px; font-weight: 600; cursor: pointer; text-decoration: none; display: inline-block; }
.wide { width: 100%; margin-top: 1rem; }
header { margin-bottom: 2rem; }
.form-control { width: 100%; padding: 10px 12px; border-radius: 8px; border: 1px solid #334155; background: #1e293b; color: var(--text-primary); }
.grid { display: grid; gap: 20px; }
.card, .panel { background: var(--panel); padding: 1.5rem; border-radius: 12px; }
.card-head { display: flex; justify-content: space-between; margin-bottom: 1rem; }
.category { color: var(--accent-primary); font-size: 0.7rem; text-transform: uppercase; font-weight: 600; }
.badge, .pill { font-size: 0.75rem; padding: 4px 10px; border-radius: 12px; color: white; }
.pill { background: rgba(56, 189, 248, 0.15); color: var(--accent-primary); }
.urgency-low { background: var(--urgency-low); color: white; }
.urgency-medium { background: var(--urgency-medium); color: white; }
.urgency-high { background: var(--urgency-high); color: white; }
.urgency-critical { background: var(--urgency-critical); color: white; }
.badges { display: flex; gap: 10px; margin: 1rem 0; }
.article-body h1 { font-size: 2.2rem; margin-bottom: 1rem; }
.article-body h2 { margin: 2rem 0 1rem; color: var(--accent-primary); }
.article-body ol, .article-body ul { padding-left: 1.5rem; line-height: 1.8; }
.article-body ul { list-style: disc; }
.escalate { margin-top: 2rem; }
.empty { text-align: center; padding: 3rem; color: var(--text-secondary); }
.flash { background: rgba(34, 197, 94, 0.15); border-left: 4px solid var(--urgency-low); padding: 1rem; border-radius: 8px; margin-bottom: 2rem; }
.two-col { display: grid; grid-template-columns: 1fr 1fr; gap: 20px; }
.form-group { margin-bottom: 1.2rem; }
.form-group label { display: block; margin-bottom: 0.4rem; }
.radios { display: flex; gap: 15px; }
.field-error { color: var(--urgency-critical); font-size: 0.8rem; margin-top: 0.3rem; }
.transcript { display: flex; flex-direction: column; gap: 10px; margin: 1rem 0; max-height: 60vh; overflow-y: auto; }
.msg { padding: 10px 14px; border-radius: 12px; max-width: 75%; }
.msg-user { align-self: flex-end; background: var(--accent-primary); color: #0f172a; }
.msg-bot { align-self: flex-start; background: #334155; }
.typing { color: var(--text-secondary); font-style: italic; margin-bottom: 1rem; }
.chat-input { display: flex; gap: 10px; }
`

// chatScript upgrades the chat form to the websocket when available. The
// plain form post keeps working without it.
const chatScript = `
(function () {
  var proto = location.protocol === 'https:' ? 'wss://' : 'ws://';
  var ws;
  try { ws = new WebSocket(proto + location.host + '/ws/chat'); } catch (e) { return; }
  var transcript = document.getElementById('transcript');
  var typing = document.getElementById('typing');
  var form = document.getElementById('chat-form');
  function add(m) {
    var div = document.createElement('div');
    div.className = 'msg msg-' + m.role;
    div.textContent = m.text;
    transcript.appendChild(div);
    transcript.scrollTop = transcript.scrollHeight;
  }
  ws.onmessage = function (ev) {
    var data = JSON.parse(ev.data);
    if (data.type === 'history') {
      transcript.innerHTML = '';
      (data.messages || []).forEach(add);
    } else if (data.type === 'message' && data.message) {
      add(data.message);
    }
    if (data.type === 'history' || data.type === 'typing') {
      typing.hidden = !data.typing;
    }
  };
  ws.onopen = function () {
    form.addEventListener('submit', function (ev) {
      ev.preventDefault();
      var input = form.elements.message;
      ws.send(JSON.stringify({ type: 'message', content: input.value }));
      input.value = '';
    });
  };
})();
`
