package web

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/sweeney/switchd/internal/status"
)

var indexTmpl = template.Must(template.New("index").Funcs(template.FuncMap{
	"uptime": func(d time.Duration) string {
		d = d.Truncate(time.Second)
		days := int(d.Hours()) / 24
		h := int(d.Hours()) % 24
		m := int(d.Minutes()) % 60
		s := int(d.Seconds()) % 60
		if days > 0 {
			return fmt.Sprintf("%dd %dh %dm %ds", days, h, m, s)
		}
		if h > 0 {
			return fmt.Sprintf("%dh %dm %ds", h, m, s)
		}
		if m > 0 {
			return fmt.Sprintf("%dm %ds", m, s)
		}
		return fmt.Sprintf("%ds", s)
	},
	"onOff": func(on bool) string {
		if on {
			return "ON"
		}
		return "OFF"
	},
	"ms": func(ms int64) string {
		return (time.Duration(ms) * time.Millisecond).String()
	},
}).Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>switchd</title>
<style>
body { font-family: monospace; max-width: 720px; margin: 2em auto; padding: 0 1em; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
td, th { text-align: left; padding: 4px 8px; border-bottom: 1px solid #ddd; }
.on { color: green; font-weight: bold; }
.off { color: #888; }
.connected { color: green; }
.disconnected { color: red; }
</style>
</head>
<body>
<h1>switchd</h1>

<h2>Inputs</h2>
{{if .Inputs}}<table>
<tr><th>Name</th><th>Kind</th><th>State</th><th>Press</th><th>Release</th><th>Toggle</th><th>Long</th><th>Click</th><th>Repeat</th></tr>
{{range .Inputs}}<tr><td>{{.Name}}</td><td>{{.Kind}}</td><td class="{{if .State}}on{{else}}off{{end}}">{{onOff .State}}</td><td>{{.Counts.Pressed}}</td><td>{{.Counts.Released}}</td><td>{{.Counts.Toggled}}</td><td>{{.Counts.LongPressed}}</td><td>{{.Counts.Clicked}}</td><td>{{.Counts.RepeatClicked}}</td></tr>
{{end}}</table>{{else}}<p>No inputs configured.</p>{{end}}

<h2>Connectivity</h2>
<table>
<tr><th>MQTT</th><td class="{{if .MQTTConnected}}connected{{else}}disconnected{{end}}">{{if .MQTTConnected}}connected{{else}}disconnected{{end}}</td></tr>
<tr><th>Broker</th><td>{{.Config.Broker}}</td></tr>
<tr><th>Client ID</th><td>{{.Config.ClientID}}</td></tr>
</table>

<h2>System</h2>
<table>
<tr><th>Uptime</th><td>{{uptime .Uptime}}</td></tr>
<tr><th>Started</th><td>{{.StartTime.UTC.Format "2006-01-02 15:04:05 UTC"}}</td></tr>
<tr><th>Poll interval</th><td>{{ms .Config.PollMs}}</td></tr>
<tr><th>Heartbeat</th><td>{{if .Config.HeartbeatMs}}{{ms .Config.HeartbeatMs}}{{else}}disabled{{end}}</td></tr>
<tr><th>Tick width</th><td>{{.Config.TickBits}} bits</td></tr>
<tr><th>GPIO backend</th><td>{{.Config.Backend}}</td></tr>
</table>
</body>
</html>
`

func renderHTML(w io.Writer, snap status.Snapshot) error {
	return indexTmpl.Execute(w, snap)
}
