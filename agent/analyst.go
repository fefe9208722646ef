package agent

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/clearfield/reporting"
	"github.com/clearfield/reporting/date"
	"github.com/clearfield/reporting/renderer"
)

const model = "gemini-2.5-pro"

// Dataset is the account data the analyst's tools operate on.
type Dataset struct {
	AccountID    string
	Positions    []reporting.Position
	Transactions []reporting.Transaction
}

func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the experts' skills from the Tools and ask them questions.
			They are at your service and keep context of your previous questions.

			The user is here primarily to understand the value, performance and
			composition of his investment account. Devise a plan of questions for
			the experts and come up with the best response to the user's request.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewResearcher returns a search-grounded expert for market context.
func NewResearcher() *Expert {
	return &Expert{
		Name: "Researcher",
		Description: `This is an expert researcher, aware of financial products,
		institutions and the latest news about funds and companies.
		Ask the Researcher whenever you need recent or grounding information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert researcher on financial markets. You can search and
			find anything related to financial institutions, companies, markets
			and funds. Leverage Google Search to ground your assertions, relate
			the latest news to the user's request.
				`}}},
		},
	}
}

// NewAnalyst returns the expert that computes reports over the account data.
func NewAnalyst(data *Dataset) *Expert {
	lib := []Function{
		accountValueFunc(data),
		performanceFunc(data),
		holdingsFunc(data),
	}
	return &Expert{
		Name: "Analyst",
		Description: `This is the Analyst. He has the user's account data and can
		compute the daily account value over a period, the time-weighted
		performance with risk statistics, and the holdings snapshot on any date.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are an analyst in charge of the user's investment account.
				Use the available tools to compute figures about the account:
				  - daily account value over a period
				  - time-weighted performance and risk statistics
				  - holdings, cost basis and allocations on a date
				The tools return markdown reports, read them and answer precisely.
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// Func implements Function from a declaration and a closure.
type Func struct {
	Decl *genai.FunctionDeclaration
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

func dateSchema(description string) *genai.Schema {
	return &genai.Schema{
		Type:        genai.TypeString,
		Description: description + " Format: YYYY-MM-DD.",
	}
}

func errorResponse(id, name string, err error) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:       id,
		Name:     name,
		Response: map[string]any{"error": err.Error()},
	}
}

func outputResponse(id, name, output string) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:       id,
		Name:     name,
		Response: map[string]any{"output": output},
	}
}

func accountValueFunc(data *Dataset) *Func {
	const name = "AccountValue"
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        name,
			Description: `AccountValue computes the daily value of the account over a date range, with net flows and daily returns.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"from": dateSchema("The first day of the period."),
					"to":   dateSchema("The last day of the period."),
				},
				Required: []string{"from", "to"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown report of the daily account value series.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			rng, err := parseRange(args)
			if err != nil {
				return errorResponse(id, name, err)
			}
			report, err := reporting.NewValuationReport(data.AccountID, rng, data.Positions, data.Transactions)
			if err != nil {
				return errorResponse(id, name, err)
			}
			return outputResponse(id, name, renderer.ValuationMarkdown(report))
		},
	}
}

func performanceFunc(data *Dataset) *Func {
	const name = "Performance"
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        name,
			Description: `Performance computes the time-weighted return of the account over a date range, with annualized return, volatility and Sharpe ratio.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"from": dateSchema("The first day of the period."),
					"to":   dateSchema("The last day of the period."),
				},
				Required: []string{"from", "to"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown report of the account performance.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			rng, err := parseRange(args)
			if err != nil {
				return errorResponse(id, name, err)
			}
			report, err := reporting.NewPerformanceFromRecords(data.AccountID, rng, data.Positions, data.Transactions)
			if err != nil {
				return errorResponse(id, name, err)
			}
			return outputResponse(id, name, renderer.PerformanceMarkdown(report))
		},
	}
}

func holdingsFunc(data *Dataset) *Func {
	const name = "Holdings"
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        name,
			Description: `Holdings computes what the account holds on a given date, with cost basis, unrealized profit and allocations.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"date": dateSchema("The snapshot date. Today is the default."),
				},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown report of the holdings snapshot.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			asOf, err := parseDate(args, "date", date.Today())
			if err != nil {
				return errorResponse(id, name, err)
			}
			report, err := reporting.NewHoldingsReport(data.AccountID, asOf, data.Positions, data.Transactions)
			if err != nil {
				return errorResponse(id, name, err)
			}
			return outputResponse(id, name, renderer.HoldingsMarkdown(report))
		},
	}
}

func parseRange(args map[string]any) (date.Range, error) {
	from, err := parseDate(args, "from", date.Date{})
	if err != nil {
		return date.Range{}, err
	}
	to, err := parseDate(args, "to", date.Date{})
	if err != nil {
		return date.Range{}, err
	}
	return date.NewRange(from, to)
}

func parseDate(args map[string]any, key string, fallback date.Date) (date.Date, error) {
	v, ok := args[key]
	if !ok {
		return fallback, nil
	}
	s, ok := v.(string)
	if !ok {
		return fallback, fmt.Errorf("argument %q is not a string but %T", key, v)
	}
	return date.Parse(s)
}
