package journal

import (
	"bytes"
	"text/template"
	"time"
)

var orgFuncs = template.FuncMap{
	"date": func(t time.Time) string { return t.UTC().Format("2006-01-02") },
	"stamp": func(t time.Time) string {
		if t.IsZero() {
			return "(unknown)"
		}
		return t.UTC().Format("2006-01-02 Mon 15:04")
	},
	"status": func(foreclosed bool) string {
		if foreclosed {
			return "FORECLOSED"
		}
		return "ACTIVE"
	},
}

var orgTemplate = template.Must(template.New("run").Funcs(orgFuncs).Parse(runOrgTemplate))

const runOrgTemplate = `* RUN: {{.Run.RunID}} {{status .Run.Foreclosed}}
:PROPERTIES:
:RUN_ID:        {{.Run.RunID}}
:STARTED:       [{{stamp .Run.StartedAt}}]
:POLICY:        {{.Run.Policy}}
:MONTHS:        {{.Run.Months}}
:FINAL_BALANCE: {{.Run.FinalBalance.StringFixed 2}}
:FINAL_FUNDS:   {{.Run.FinalFunds.StringFixed 2}}
:TOTAL_PAID:    {{.Run.TotalPaid.StringFixed 2}}
:MISSED:        {{.Run.Missed}}
:END:
{{- if .Months}}

** Months
| Month | Date       | Payment | Balance | Funds | Missed | Status |
|-------+------------+---------+---------+-------+--------+--------|
{{- range .Months}}
| {{.Month}} | {{date .Date}} | {{.Payment.StringFixed 2}} | {{.Balance.StringFixed 2}} | {{.Funds.StringFixed 2}} | {{.Missed}} | {{status .Foreclosed}} |
{{- end}}
{{- end}}
`

// FormatRunOrg renders a run and its months as an Org-mode block.
func FormatRunOrg(run RunRecord, months []MonthRecord) (string, error) {
	var buf bytes.Buffer
	err := orgTemplate.Execute(&buf, struct {
		Run    RunRecord
		Months []MonthRecord
	}{run, months})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
