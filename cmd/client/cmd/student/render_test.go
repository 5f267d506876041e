package student

import (
	"bytes"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"studentkeeper/internal/app/client/viewmodel"
	domain "studentkeeper/internal/domain/student"
)

var renderRows = []viewmodel.Row{
	{Position: "1", Student: domain.Student{ID: "id-ana", FirstName: "Ana", LastName: "Cruz", Course: "BSIT", Username: "ana1", Password: "p1"}},
	{Position: "2", Student: domain.Student{ID: "id-ben", FirstName: "Ben", LastName: "Reyes", Course: "BSCS", Username: "ben2", Password: "p2"}},
}

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestRender(t *testing.T) {
	tests := []struct {
		golden string
		render func(buf *bytes.Buffer) error
	}{
		{golden: "list_table", render: func(buf *bytes.Buffer) error { return renderTable(buf, renderRows) }},
		{golden: "list_empty", render: func(buf *bytes.Buffer) error { return renderTable(buf, nil) }},
		{golden: "list_json", render: func(buf *bytes.Buffer) error { return renderJSON(buf, renderRows, false) }},
		{golden: "list_json_passwords", render: func(buf *bytes.Buffer) error { return renderJSON(buf, renderRows, true) }},
		{golden: "list_csv", render: func(buf *bytes.Buffer) error { return renderCSV(buf, renderRows, false) }},
		{golden: "list_csv_passwords", render: func(buf *bytes.Buffer) error { return renderCSV(buf, renderRows, true) }},
		{golden: "detail", render: func(buf *bytes.Buffer) error { return renderDetail(buf, renderRows[1], false) }},
		{golden: "detail_password", render: func(buf *bytes.Buffer) error { return renderDetail(buf, renderRows[1], true) }},
	}

	for _, tt := range tests {
		t.Run(tt.golden, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, tt.render(&buf))
			newGoldie(t).Assert(t, tt.golden, buf.Bytes())
		})
	}
}
