package breakeven

import (
	"encoding/json"
	"fmt"
	"strings"
)

// TableFormatter formats solver results as console text
type TableFormatter struct{}

// Format generates a summary of the solved value and its settlement
func (tf *TableFormatter) Format(result *Result) string {
	var sb strings.Builder

	sb.WriteString("NET PAY GROSS-UP\n")
	sb.WriteString(strings.Repeat("=", 48) + "\n")
	sb.WriteString(fmt.Sprintf("Target Net Pay:   $%s\n", result.Request.TargetNetPay.StringFixed(2)))
	sb.WriteString(fmt.Sprintf("Solved For:       %s\n", result.Request.Target))
	sb.WriteString(fmt.Sprintf("Iterations:       %d\n", result.Iterations))
	sb.WriteString("\n")

	if result.Request.Target == SolveHours {
		sb.WriteString(fmt.Sprintf("Hours Needed:     %s\n", result.Value.StringFixed(2)))
	} else {
		sb.WriteString(fmt.Sprintf("Wage Needed:      $%s/hr\n", result.Value.StringFixed(2)))
	}

	if s := result.Settlement; s != nil {
		sb.WriteString(strings.Repeat("-", 48) + "\n")
		sb.WriteString(fmt.Sprintf("Gross Pay:        $%s\n", s.GrossPay.StringFixed(2)))
		sb.WriteString(fmt.Sprintf("CPP:              $%s\n", s.PensionContribution.StringFixed(2)))
		sb.WriteString(fmt.Sprintf("EI:               $%s\n", s.InsurancePremium.StringFixed(2)))
		sb.WriteString(fmt.Sprintf("Federal Tax:      $%s\n", s.FederalTax.StringFixed(2)))
		sb.WriteString(fmt.Sprintf("Provincial Tax:   $%s\n", s.RegionalTax.StringFixed(2)))
		sb.WriteString(fmt.Sprintf("Net Pay:          $%s\n", s.NetPay.StringFixed(2)))
	}

	return sb.String()
}

// JSONFormatter formats solver results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output for a solver result
func (jf *JSONFormatter) Format(result *Result) (string, error) {
	var data []byte
	var err error
	if jf.Pretty {
		data, err = json.MarshalIndent(result, "", "  ")
	} else {
		data, err = json.Marshal(result)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}
