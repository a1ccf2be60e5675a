package chart

import (
	"fmt"
	"sort"

	"solana_portfolio/internal/domain/entity"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const vegaLiteSchema = "https://vega.github.io/schema/vega-lite/v5.json"

// VegaLiteRenderer turns display records into a Vega-Lite pie chart spec.
type VegaLiteRenderer struct {
	Title string
	Width int
}

// NewVegaLiteRenderer creates a renderer with the default title and size.
func NewVegaLiteRenderer() *VegaLiteRenderer {
	return &VegaLiteRenderer{Title: "Portfolio breakdown (USD)", Width: 400}
}

type vlSpec struct {
	Schema   string       `json:"$schema"`
	Title    string       `json:"title,omitempty"`
	Width    int          `json:"width,omitempty"`
	Height   int          `json:"height,omitempty"`
	Data     vlData       `json:"data"`
	Mark     vlMark       `json:"mark"`
	Encoding vlEncoding   `json:"encoding"`
	View     *vlViewStyle `json:"view,omitempty"`
}

type vlData struct {
	Values []vlDatum `json:"values"`
}

type vlDatum struct {
	Symbol   string  `json:"symbol"`
	ValueUSD float64 `json:"value_usd"`
	Percent  float64 `json:"percent"`
	Tooltip  string  `json:"tooltip"`
}

type vlMark struct {
	Type        string `json:"type"`
	InnerRadius int    `json:"innerRadius,omitempty"`
}

type vlEncoding struct {
	Theta   vlField `json:"theta"`
	Color   vlField `json:"color"`
	Order   vlField `json:"order"`
	Tooltip vlField `json:"tooltip"`
}

type vlField struct {
	Field string      `json:"field"`
	Type  string      `json:"type"`
	Stack *bool       `json:"stack,omitempty"`
	Sort  interface{} `json:"sort,omitempty"`
	Title string      `json:"title,omitempty"`
}

type vlViewStyle struct {
	Stroke interface{} `json:"stroke"`
}

// Render implements port.ChartRenderer. Slices are ordered by value, largest
// first, with ties broken by symbol.
func (r *VegaLiteRenderer) Render(records []entity.DisplayRecord) ([]byte, error) {
	sorted := make([]entity.DisplayRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].ValueUSD != sorted[j].ValueUSD {
			return sorted[i].ValueUSD > sorted[j].ValueUSD
		}
		return sorted[i].Symbol < sorted[j].Symbol
	})

	values := make([]vlDatum, 0, len(sorted))
	for _, rec := range sorted {
		values = append(values, vlDatum{
			Symbol:   rec.Symbol,
			ValueUSD: rec.ValueUSD,
			Percent:  rec.Percent,
			Tooltip:  rec.Tooltip,
		})
	}

	stack := true
	spec := vlSpec{
		Schema: vegaLiteSchema,
		Title:  r.Title,
		Width:  r.Width,
		Height: r.Width,
		Data:   vlData{Values: values},
		Mark:   vlMark{Type: "arc"},
		Encoding: vlEncoding{
			Theta:   vlField{Field: "value_usd", Type: "quantitative", Stack: &stack},
			Color:   vlField{Field: "symbol", Type: "nominal", Title: "Asset"},
			Order:   vlField{Field: "value_usd", Type: "quantitative", Sort: "descending"},
			Tooltip: vlField{Field: "tooltip", Type: "nominal"},
		},
		View: &vlViewStyle{Stroke: nil},
	}

	out, err := json.Marshal(spec)
	if err != nil {
		return nil, fmt.Errorf("marshal vega-lite spec: %w", err)
	}
	return out, nil
}
