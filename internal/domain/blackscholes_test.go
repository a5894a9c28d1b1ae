package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Escenario de referencia: call europea S=100 K=105 T=0.5 σ=0.2 r=0.05 q=0.02.
func refCall() ContractSpec {
	return ContractSpec{
		Style: StyleEuropean, Type: TypeCall,
		Spot: 100, Strike: 105, Maturity: 0.5,
		Volatility: 0.2, Rate: 0.05, Dividend: 0.02,
	}
}

func TestBSPrice_ReferenceCall(t *testing.T) {
	price, err := BSPrice(refCall())
	require.NoError(t, err)
	assert.InDelta(t, 4.136725, price, 1e-5)
}

func TestBSPrice_ReferencePut(t *testing.T) {
	c := refCall()
	c.Type = TypePut
	price, err := BSPrice(c)
	require.NoError(t, err)
	assert.InDelta(t, 7.539282, price, 1e-5)
}

func TestBSGreeks_ReferenceCall(t *testing.T) {
	g, err := BSGreeks(refCall())
	require.NoError(t, err)

	assert.InDelta(t, 0.428894, g.Delta, 1e-4)
	assert.InDelta(t, 0.027536, g.Gamma, 1e-4)
	assert.InDelta(t, 27.536400, g.Vega, 1e-3)
	assert.InDelta(t, -0.018047, g.Theta, 1e-4)
	assert.InDelta(t, 19.376333, g.Rho, 1e-3)
}

func TestBSGreeks_PutDeltaNegative(t *testing.T) {
	c := refCall()
	c.Type = TypePut
	g, err := BSGreeks(c)
	require.NoError(t, err)

	assert.Less(t, g.Delta, 0.0)
	assert.Less(t, g.Rho, 0.0)
	// Gamma y vega comparten fórmula entre call y put
	callG, _ := BSGreeks(refCall())
	assert.Equal(t, callG.Gamma, g.Gamma)
	assert.Equal(t, callG.Vega, g.Vega)
}

// Paridad put-call: C − P = S·e^{−qT} − K·e^{−rT}.
func TestBSPrice_PutCallParity(t *testing.T) {
	call := refCall()
	put := refCall()
	put.Type = TypePut

	cp, err := BSPrice(call)
	require.NoError(t, err)
	pp, err := BSPrice(put)
	require.NoError(t, err)

	want := call.Spot*math.Exp(-call.Dividend*call.Maturity) -
		call.Strike*math.Exp(-call.Rate*call.Maturity)
	assert.InDelta(t, want, cp-pp, 1e-10)
}

func TestBSPrice_DegenerateInputs(t *testing.T) {
	c := refCall()
	c.Volatility = 0
	_, err := BSPrice(c)
	assert.ErrorIs(t, err, ErrInvalidSpec)

	c = refCall()
	c.Maturity = 0
	_, err = BSPrice(c)
	assert.ErrorIs(t, err, ErrInvalidSpec)

	_, err = BSGreeks(c)
	assert.ErrorIs(t, err, ErrInvalidSpec)
}
