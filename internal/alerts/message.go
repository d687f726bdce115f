package alerts

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/MichalMitros/price-monitor/internal/platform/models"
	"github.com/samber/lo"
)

var bodyTemplate = template.Must(template.New("alert").Parse(`<html>
<body>
<h2>Price Alert</h2>
<p><strong>{{.Product}}</strong></p>
<p>{{.Message}}</p>
{{- if .Price}}
<p>Current price: {{.Price}} {{.Currency}}</p>
{{- end}}
{{- if .URL}}
<p><a href="{{.URL}}">View product</a></p>
{{- end}}
<p style="color:#888">You receive this message because of your {{.Type}} alert rule #{{.RuleID}}.</p>
</body>
</html>
`))

type messageData struct {
	Product  string
	Message  string
	Price    string
	Currency string
	URL      string
	Type     models.AlertType
	RuleID   int64
}

func renderMessage(rule models.AlertRule, product *models.Product, d decision) (string, string, error) {
	data := messageData{
		Product: product.Name,
		Message: d.message,
		URL:     lo.FromPtr(product.URL),
		Type:    rule.Type,
		RuleID:  rule.ID,
	}
	if d.observation != nil {
		data.Price = d.observation.Price.StringFixed(2)
		data.Currency = d.observation.Currency
	}

	var body bytes.Buffer
	if err := bodyTemplate.Execute(&body, data); err != nil {
		return "", "", fmt.Errorf("can't render alert message: %w", err)
	}

	return "Price Alert: " + product.Name, body.String(), nil
}
