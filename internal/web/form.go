// internal/web/form.go
package web

import (
	"html/template"

	"github.com/tamzrod/pemf-controller/internal/protocol"
	"github.com/tamzrod/pemf-controller/internal/session"
)

const formTemplateName = "form"

// MaxSessionMinutes is advisory: shown on the form, not enforced.
const MaxSessionMinutes = 120

// DutyWarningPercent is the duty above which coils risk overheating.
const DutyWarningPercent = 10

// GuidelinesURL points users at published frequency guidelines.
const GuidelinesURL = "https://www.pemfsupply.com/pages/frequency"

var formTemplate = template.Must(template.New(formTemplateName).Parse(`<html>
  <head><title>PEMF Settings</title></head>
  <body>
    <h1>{{.Title}}</h1>
    <form action="/" method="POST">
      Frequency (Hz) [Max: {{.MaxFrequency}}Hz]: <input type="number" step="any" name="{{.FieldFrequency}}" value="{{printf "%.2f" .Params.FrequencyHz}}"><br>
      Duty Cycle (%) [Max: {{.MaxDuty}}%]: <input type="number" name="{{.FieldDuty}}" value="{{.Params.DutyPercent}}"><br>
      Session Time (min) [Max: {{.MaxMinutes}} mins]: <input type="number" name="{{.FieldDuration}}" value="{{.Params.DurationMinutes}}"><br>
      <input type="submit" value="Start">
    </form>
    <p style="color:red">Avoid duty values higher than {{.DutyWarning}}% to prevent coil from overheating</p>
    <p>You can find guidelines for values <a href="{{.GuidelinesURL}}">here</a></p>
  </body>
</html>
`))

// formView is everything the form template renders.
type formView struct {
	Title  string
	Params session.Parameters

	FieldFrequency string
	FieldDuty      string
	FieldDuration  string

	MaxFrequency  string
	MaxDuty       int
	MaxMinutes    int
	DutyWarning   int
	GuidelinesURL string
}

func newFormView(title string, p session.Parameters) formView {
	return formView{
		Title:          title,
		Params:         p,
		FieldFrequency: session.FieldFrequency,
		FieldDuty:      session.FieldDuty,
		FieldDuration:  session.FieldDuration,
		MaxFrequency:   "150,000",
		MaxDuty:        protocol.MaxDutyPercent,
		MaxMinutes:     MaxSessionMinutes,
		DutyWarning:    DutyWarningPercent,
		GuidelinesURL:  GuidelinesURL,
	}
}
