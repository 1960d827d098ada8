package prompts

import (
	"bytes"
	"sort"
	"strings"
	"text/template"

	"ecofin-advisor/internal/domain/entity"
)

type ContextData struct {
	Instructions   string
	ResponseFormat string
	Assumptions    []string
	Factors        []entity.EmissionFactor
}

// RenderContext executes baseTemplate over the pack. Factors are listed by category.
func RenderContext(baseTemplate string, pack *entity.ContextPack) (string, error) {
	factors := make([]entity.EmissionFactor, len(pack.Factors))
	copy(factors, pack.Factors)

	sort.SliceStable(factors, func(i, j int) bool {
		return factors[i].Category < factors[j].Category
	})

	data := ContextData{
		Instructions:   strings.TrimSpace(pack.Instructions) + "\n",
		ResponseFormat: strings.TrimSpace(pack.ResponseFormat) + "\n",
		Assumptions:    pack.Assumptions,
		Factors:        factors,
	}

	tmpl, err := template.New("context").Option("missingkey=error").Parse(baseTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return strings.TrimSpace(buf.String()), nil
}
