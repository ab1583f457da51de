package advisor

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/fuelbook/internal/model"
)

func TestAdvise(t *testing.T) {
	tests := []struct {
		name           string
		priceA, priceB float64
		effA, effB     float64
		want           Choice
	}{
		{"ethanol cheaper per km", 3.00, 5.00, 7, 10, ChoiceA},
		{"gasoline cheaper per km", 4.00, 5.00, 7, 10, ChoiceB},
		{"exactly equal", 3.5, 5, 7, 10, ChoiceEither},
		{"same fuel prices and economy", 5, 5, 10, 10, ChoiceEither},
		{"near-equal flips without tolerance", 3.5000001, 5, 7, 10, ChoiceB},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Advise(tt.priceA, tt.priceB, tt.effA, tt.effB)
			require.NoError(t, err)
			assert.Equal(t, tt.want, r.Choice)
		})
	}
}

func TestAdviseRatios(t *testing.T) {
	r, err := Advise(3, 5, 7, 10)
	require.NoError(t, err)
	assert.InDelta(t, 0.6, r.PriceRatio, 1e-12)
	assert.InDelta(t, 0.7, r.EfficiencyRatio, 1e-12)
	assert.Equal(t, "Melhor abastecer com ETANOL", r.Verdict())
	assert.Equal(t, "Relação de preço: 0.60\nRelação de consumo: 0.70", r.Details())
}

func TestAdviseRejectsNonPositive(t *testing.T) {
	bad := [][4]float64{
		{0, 5, 7, 10},
		{3, 0, 7, 10},
		{3, 5, 0, 10},
		{3, 5, 7, 0},
		{-3, 5, 7, 10},
		{3, 5, math.NaN(), 10},
		{math.Inf(1), 5, 7, 10},
	}
	for _, in := range bad {
		r, err := Advise(in[0], in[1], in[2], in[3])
		assert.ErrorIs(t, err, ErrInvalidInput, "%v", in)
		assert.Equal(t, Result{}, r)
	}
}

func TestAdviseVehicle(t *testing.T) {
	car := model.Vehicle{ID: model.NewID(), Name: "Gol", TankLiters: 50, EthanolEfficiency: 7, GasolineEfficiency: 10}

	r, err := AdviseVehicle("3,00", "5.00", model.Some(car))
	require.NoError(t, err)
	assert.Equal(t, ChoiceA, r.Choice)
	fuel, ok := r.Winner()
	assert.True(t, ok)
	assert.Equal(t, model.Ethanol, fuel)

	r, err = AdviseVehicle("4,50", "5,00", model.Some(car))
	require.NoError(t, err)
	assert.Equal(t, "Melhor abastecer com GASOLINA", r.Verdict())

	r, err = AdviseVehicle("3,50", "5", model.Some(car))
	require.NoError(t, err)
	assert.Equal(t, "Não há diferença significativa no abastecimento", r.Verdict())
	_, ok = r.Winner()
	assert.False(t, ok)
}

func TestAdviseVehicleErrors(t *testing.T) {
	car := model.Vehicle{Name: "Gol", EthanolEfficiency: 7, GasolineEfficiency: 10}

	_, err := AdviseVehicle("3", "5", model.None())
	assert.ErrorIs(t, err, ErrNoVehicle)

	for _, prices := range [][2]string{{"", "5"}, {"3", "abc"}, {"0", "5"}, {"3", "-5"}} {
		_, err := AdviseVehicle(prices[0], prices[1], model.Some(car))
		assert.ErrorIs(t, err, ErrInvalidInput, "%v", prices)
		assert.Equal(t, "Valores inválidos", Message(Result{}, err))
	}

	broken := model.Vehicle{Name: "Sem dados"}
	_, err = AdviseVehicle("3", "5", model.Some(broken))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestMessage(t *testing.T) {
	r, err := Advise(3, 5, 7, 10)
	require.NoError(t, err)
	assert.Equal(t, "Melhor abastecer com ETANOL\nRelação de preço: 0.60\nRelação de consumo: 0.70", Message(r, nil))
	assert.Equal(t, ErrNoVehicle.Error(), Message(Result{}, ErrNoVehicle))
}
