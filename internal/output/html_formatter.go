package output

import (
	"bytes"
	_ "embed"
	"html/template"
)

// HTMLFormatter produces a printable HTML pay stub
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string      { return "html" }
func (h HTMLFormatter) Extension() string { return "html" }

//go:embed templates/paystub.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("paystub").Funcs(template.FuncMap{
	"curr": FormatCurrency,
	"date": formatDate,
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(stub *PayStub) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		*PayStub
		Earnings   []stubLine
		Deductions []stubLine
	}{stub, stub.earningsLines(), stub.deductionLines()}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
