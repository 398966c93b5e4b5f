package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T { return &v }

func TestWeightedScore_PromedioPonderado(t *testing.T) {
	criteria := map[int64]*Criterion{
		1: {ID: 1, Weight: decimal.NewFromInt(3)},
		2: {ID: 2, Weight: decimal.NewFromInt(1)},
	}
	evals := []*Evaluation{
		{Score: 100, CriterionID: ptr(int64(1))},
		{Score: 60, CriterionID: ptr(int64(2))},
	}
	// (100*3 + 60*1) / 4 = 90
	assert.True(t, decimal.NewFromInt(90).Equal(WeightedScore(evals, criteria)))
}

func TestWeightedScore_SinCriterioPesaUno(t *testing.T) {
	evals := []*Evaluation{{Score: 50}, {Score: 75, CriterionID: ptr(int64(99))}}
	assert.Equal(t, "62.5", WeightedScore(evals, nil).String())
}

func TestWeightedScore_Vacio(t *testing.T) {
	assert.True(t, WeightedScore(nil, nil).IsZero())
}

func TestPrincipal_CanManage(t *testing.T) {
	coord := Principal{UserID: 1, RoleID: RoleCoordinator}
	student := Principal{UserID: 2, RoleID: RoleStudent}

	assert.True(t, coord.CanManage(99))
	assert.True(t, student.CanManage(2))
	assert.False(t, student.CanManage(3))
	assert.False(t, student.CanManage(0))
}
