package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		label string
		want  Variant
	}{
		{label: "Contract Expired", want: Error},
		{label: "Pending Approval", want: Warning},
		{label: "Draft", want: Default},
		{label: "ACTIVE", want: Success},
		{label: "Paid", want: Success},
		{label: "LOW", want: Warning},
		{label: "DEPLETED", want: Error},
		{label: "NOTICE", want: Info},
		{label: "CRITICAL", want: Error},
		{label: "", want: Default},
		// success keywords are checked before warning ones
		{label: "approved but low", want: Success},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.label, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.label))
		})
	}
}

func TestBadgeEscapes(t *testing.T) {
	got := string(Badge("<b>Paid</b>"))
	assert.Equal(t, `<span class="badge badge-success">&lt;b&gt;Paid&lt;/b&gt;</span>`, got)
}
