package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpenseFilter_Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   ExpenseFilter
		want ExpenseFilter
	}{
		{
			name: "zero filter gets defaults",
			in:   ExpenseFilter{},
			want: ExpenseFilter{Page: DefaultPage, Limit: DefaultLimit, SortBy: SortByDate, SortOrder: SortDesc},
		},
		{
			name: "negative page and limit",
			in:   ExpenseFilter{Page: -3, Limit: -1},
			want: ExpenseFilter{Page: DefaultPage, Limit: DefaultLimit, SortBy: SortByDate, SortOrder: SortDesc},
		},
		{
			name: "oversized limit is capped",
			in:   ExpenseFilter{Page: 2, Limit: 1000},
			want: ExpenseFilter{Page: 2, Limit: MaxLimit, SortBy: SortByDate, SortOrder: SortDesc},
		},
		{
			name: "explicit values survive",
			in:   ExpenseFilter{Page: 3, Limit: 25, SortBy: SortByAmount, SortOrder: SortAsc},
			want: ExpenseFilter{Page: 3, Limit: 25, SortBy: SortByAmount, SortOrder: SortAsc},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.in.Normalize()
			assert.Equal(t, tt.want, tt.in)
		})
	}
}
