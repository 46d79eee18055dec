package costing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jmcastro/stockpilot-api/internal/domain/costing"
)

func TestWeightedAverage(t *testing.T) {
	d := decimal.NewFromInt

	// 10 unidades a 10 + 10 unidades a 20 = promedio 15
	got := costing.WeightedAverage(d(10), d(10), d(10), d(20))
	assert.True(t, got.Equal(d(15)), "obtuvo %s", got)

	// sin stock previo el promedio es el costo de entrada
	got = costing.WeightedAverage(d(0), d(0), d(5), d(42))
	assert.True(t, got.Equal(d(42)))

	// stock previo negativo que no alcanza a compensarse: costo cero
	got = costing.WeightedAverage(d(-10), d(10), d(5), d(20))
	assert.True(t, got.IsZero(), "denominador no positivo degrada a cero")

	// ponderación asimétrica: 30 a 10 + 10 a 50 = (300+500)/40 = 20
	got = costing.WeightedAverage(d(30), d(10), d(10), d(50))
	assert.True(t, got.Equal(d(20)), "obtuvo %s", got)
}
