package syncer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type person struct {
	ID   int64
	Name string
	Age  string
}

func personSearchText(p person) []string {
	return []string{p.Name, p.Age}
}

func TestFilter(t *testing.T) {
	list := []person{
		{ID: 1, Name: "Jane Doe", Age: "40"},
		{ID: 2, Name: "John Roe", Age: "22"},
	}

	tests := []struct {
		name    string
		term    string
		wantIDs []int64
	}{
		{"empty term matches everything", "", []int64{1, 2}},
		{"whitespace-only term matches everything", "   ", []int64{1, 2}},
		{"case-insensitive substring", "jo", []int64{2}},
		{"uppercase needle", "JANE", []int64{1}},
		{"matches any designated field", "40", []int64{1}},
		{"no match", "zzz", nil},
		{"shared substring", "oe", []int64{1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(list, tt.term, personSearchText)
			ids := make([]int64, 0, len(got))
			for _, p := range got {
				ids = append(ids, p.ID)
			}
			if len(tt.wantIDs) == 0 {
				assert.Empty(t, ids)
				return
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestFilterBlankTermIsIdentity(t *testing.T) {
	list := []person{{ID: 1, Name: "Jane"}}
	got := Filter(list, "", personSearchText)
	assert.Equal(t, &list[0], &got[0], "blank term must return the list itself")
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	list := []person{
		{ID: 1, Name: "Jane Doe"},
		{ID: 2, Name: "John Roe"},
	}
	_ = Filter(list, "john", personSearchText)
	assert.Equal(t, "Jane Doe", list[0].Name)
	assert.Len(t, list, 2)
}
