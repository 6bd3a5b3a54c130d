package factory

import (
	solanago "github.com/gagliardetto/solana-go"
	jsoniter "github.com/json-iterator/go"

	"github.com/etherfun/launchpad-go/sale/shared"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// SaleSummary is the indexer-facing view of one sale: registry state plus the
// live curve figures when the sale has been deployed.
type SaleSummary struct {
	Address       string `json:"address"`
	Creator       string `json:"creator"`
	Name          string `json:"name"`
	Symbol        string `json:"symbol"`
	TotalRaised   string `json:"total_raised"`
	SaleGoal      string `json:"sale_goal"`
	TokensSold    string `json:"tokens_sold,omitempty"`
	Status        string `json:"status"`
	GoalReached   bool   `json:"goal_reached"`
	Launched      bool   `json:"launched"`
	Pair          string `json:"pair,omitempty"`
	ConfigVersion uint64 `json:"config_version"`
	Description   string `json:"description,omitempty"`
	Image         string `json:"image,omitempty"`
	Website       string `json:"website,omitempty"`
}

// Summary assembles the view for a registered sale.
func (f *Factory) Summary(token solanago.PublicKey) (SaleSummary, error) {
	record, ok := f.records[token]
	if !ok {
		return SaleSummary{}, ErrSaleNotFound
	}
	out := SaleSummary{
		Address:       record.Address.String(),
		Creator:       record.Creator.String(),
		Name:          record.Name,
		Symbol:        record.Symbol,
		TotalRaised:   record.TotalRaised.String(),
		SaleGoal:      record.SaleGoal.String(),
		Status:        shared.StatusSelling.String(),
		Launched:      record.Launched,
		ConfigVersion: record.Config.Version,
	}
	if s, ok := f.sales[token]; ok {
		out.TokensSold = s.TokensSold().String()
		out.Status = s.Status().String()
		out.GoalReached = s.GoalReached()
		if s.Launched() {
			out.Pair = s.Pair().String()
		}
	}
	if meta, ok := f.metadata[token]; ok {
		out.Description = meta.Description
		out.Image = meta.Image
		out.Website = meta.Website
	}
	return out, nil
}

// SummaryJSON is Summary marshalled for transport.
func (f *Factory) SummaryJSON(token solanago.PublicKey) ([]byte, error) {
	summary, err := f.Summary(token)
	if err != nil {
		return nil, err
	}
	return json.Marshal(summary)
}
