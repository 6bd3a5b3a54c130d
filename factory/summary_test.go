package factory

import (
	"testing"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestSummary(t *testing.T) {
	f := newFactoryFixture(t)
	token, err := f.factory.CreateSale(f.creator, "Meme Coin", "MEME",
		`{"description":"to the moon"}`, nil, nil)
	require.NoError(t, err)

	summary, err := f.factory.Summary(token)
	require.NoError(t, err)
	require.Equal(t, token.String(), summary.Address)
	require.Equal(t, "MEME", summary.Symbol)
	require.Equal(t, "0", summary.TotalRaised)
	require.Equal(t, "to the moon", summary.Description)
	require.Equal(t, "selling", summary.Status)
	require.False(t, summary.Launched)
	require.Empty(t, summary.TokensSold)

	buyer := solanago.NewWallet().PublicKey()
	f.fund(t, buyer, "1")
	require.NoError(t, f.factory.BuyToken(buyer, token, amount(t, "0.5"), nil))

	raw, err := f.factory.SummaryJSON(token)
	require.NoError(t, err)
	require.Equal(t, "495000000000000000", gjson.GetBytes(raw, "total_raised").String())
	require.NotEmpty(t, gjson.GetBytes(raw, "tokens_sold").String())

	_, err = f.factory.Summary(solanago.NewWallet().PublicKey())
	require.ErrorIs(t, err, ErrSaleNotFound)
}
