package render

import (
	"bytes"
	"fmt"
	"html/template"
)

var htmlTemplate = template.Must(template.New("newsletter").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <style>
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; background-color: #f8f9fa; }
        .container { max-width: 800px; margin: 0 auto; background-color: white; box-shadow: 0 0 20px rgba(0,0,0,0.1); }
        .header { background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); color: white; padding: 2rem; text-align: center; }
        .header h1 { font-size: 2.5rem; margin-bottom: 0.5rem; font-weight: 700; }
        .header .subtitle { font-size: 1.1rem; opacity: 0.9; margin-bottom: 1rem; }
        .header .date { font-size: 0.9rem; opacity: 0.8; }
        .content { padding: 2rem; }
        .greeting { margin-bottom: 1.5rem; }
        .section { margin-bottom: 3rem; }
        .section-title { font-size: 1.8rem; color: #2c3e50; margin-bottom: 1.5rem; padding-bottom: 0.5rem; border-bottom: 3px solid #667eea; }
        .item { background: #f8f9fa; border-left: 4px solid #667eea; padding: 1.5rem; margin-bottom: 1.5rem; border-radius: 0 8px 8px 0; }
        .item-title { font-size: 1.3rem; font-weight: 600; color: #2c3e50; margin-bottom: 0.8rem; }
        .item-meta { display: flex; gap: 1rem; margin-bottom: 1rem; flex-wrap: wrap; }
        .meta-item { background: #e9ecef; padding: 0.3rem 0.8rem; border-radius: 20px; font-size: 0.85rem; color: #495057; }
        .category { background: #667eea; color: white; }
        .item-summary { color: #555; margin-bottom: 1rem; }
        .item-findings { background: #e8f4f8; padding: 1rem; border-radius: 6px; margin-bottom: 1rem; }
        .findings-label { font-weight: 600; color: #2c3e50; margin-bottom: 0.5rem; }
        .item-link { display: inline-block; color: #667eea; text-decoration: none; font-weight: 500; padding: 0.5rem 1rem; border: 2px solid #667eea; border-radius: 25px; }
        .stats { background: linear-gradient(135deg, #f093fb 0%, #f5576c 100%); color: white; padding: 1.5rem; border-radius: 8px; margin-bottom: 2rem; text-align: center; }
        .stats-grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(150px, 1fr)); gap: 1rem; margin-top: 1rem; }
        .stat-item { background: rgba(255,255,255,0.2); padding: 1rem; border-radius: 6px; }
        .stat-number { font-size: 2rem; font-weight: 700; display: block; }
        .notes { background: #fff3cd; color: #856404; padding: 1rem; border-radius: 6px; margin-bottom: 2rem; }
        .footer { background: #2c3e50; color: white; padding: 2rem; text-align: center; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>{{.Title}}</h1>
            <div class="subtitle">{{.Headline}}</div>
            <div class="date">{{.Date}}</div>
        </div>
        <div class="content">
            <p class="greeting">Hi {{.Name}},</p>
            <div class="stats">
                <h3>Newsletter Summary</h3>
                <div class="stats-grid">
                    <div class="stat-item"><span class="stat-number">{{len .Papers}}</span><span class="stat-label">Research Papers</span></div>
                    <div class="stat-item"><span class="stat-number">{{len .News}}</span><span class="stat-label">AI Updates</span></div>
                    <div class="stat-item"><span class="stat-number">{{.Total}}</span><span class="stat-label">Total Items</span></div>
                </div>
            </div>
{{- if .Notes}}
            <div class="notes">{{range .Notes}}<p>Note: {{.}}</p>{{end}}</div>
{{- end}}
{{- if .Papers}}
            <div class="section">
                <h2 class="section-title">📚 Latest Research Papers</h2>
{{- range .Papers}}
                <div class="item">
                    <div class="item-title">{{.Title}}</div>
                    <div class="item-meta">
                        <span class="meta-item category">{{.Category}}</span>
                        <span class="meta-item">📅 {{.Date}}</span>
                    </div>
                    <div class="item-summary">{{.Summary}}</div>
{{- if .Findings}}
                    <div class="item-findings">
                        <div class="findings-label">Key Findings:</div>
                        {{.Findings}}
                    </div>
{{- end}}
                    <a href="{{.Source}}" class="item-link" target="_blank">Read Paper →</a>
                </div>
{{- end}}
            </div>
{{- end}}
{{- if .News}}
            <div class="section">
                <h2 class="section-title">🚀 AI Tools &amp; Updates</h2>
{{- range .News}}
                <div class="item">
                    <div class="item-title">{{.Title}}</div>
                    <div class="item-meta">
                        <span class="meta-item category">{{.Emoji}} {{.Category}}</span>
                        <span class="meta-item">📅 {{.Date}}</span>
                    </div>
                    <div class="item-summary">{{.Summary}}</div>
                    <a href="{{.Source}}" class="item-link" target="_blank">Learn More →</a>
                </div>
{{- end}}
            </div>
{{- end}}
        </div>
        <div class="footer">
            <p><strong>AI Agents Newsletter</strong></p>
            <p>Generated on {{.Date}}</p>
            <p>Stay updated with the latest in AI and agent technologies!</p>
        </div>
    </div>
</body>
</html>
`))

// htmlView adds the personalisation placeholder to view.
type htmlView struct {
	view
	Name string
}

func renderHTML(v view) (string, error) {
	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, htmlView{view: v, Name: NamePlaceholder}); err != nil {
		return "", fmt.Errorf("render html: %w", err)
	}
	return buf.String(), nil
}
