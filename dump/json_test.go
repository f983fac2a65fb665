package dump

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/tilestat/config"
	"github.com/arloliu/tilestat/errs"
)

func TestMarshalJSONKeyOrder(t *testing.T) {
	got, err := json.Marshal(smallReport())
	require.NoError(t, err)

	want := `{"width":3,"height":2,"tile":2,"tiles_x":2,"tiles_y":1,` +
		`"var_threshold":400,"brightness_threshold":null,"seed":7,"anomalies":1,` +
		`"mean_map":[1.5,129.4140625],"var_map":[0.25,2232.14892578125],"anom_map":[0,1]}`
	require.Equal(t, want, string(got))
}

func TestMarshalJSONNullableFields(t *testing.T) {
	r := smallReport()
	r.Seeded = false
	r.Seed = 0
	r.BrightnessEnabled = true
	r.BrightnessThreshold = 180

	got, err := json.Marshal(r)
	require.NoError(t, err)
	require.Contains(t, string(got), `"brightness_threshold":180,"seed":null,`)
}

func TestMarshalJSONWidensThresholds(t *testing.T) {
	r := smallReport()
	r.VarThreshold = 0.1

	got, err := json.Marshal(r)
	require.NoError(t, err)
	require.Contains(t, string(got), `"var_threshold":0.10000000149011612,`)
}

func TestJSONRoundTrip(t *testing.T) {
	reports := map[string]*Report{
		"small":  smallReport(),
		"fixed":  runReport(t, config.WithFixedPattern(), config.WithoutBrightnessThreshold()),
		"seeded": runReport(t, config.WithTile(16), config.WithSeed(123), config.WithBrightnessThreshold(180)),
	}

	for name, r := range reports {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, WriteJSON(&buf, r))
			require.True(t, strings.HasSuffix(buf.String(), "}\n"))

			got, err := ReadJSON(&buf)
			require.NoError(t, err)
			if diff := cmp.Diff(r, got); diff != "" {
				t.Errorf("json round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWriteJSONIndented(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, smallReport()))

	lines := strings.Split(buf.String(), "\n")
	require.Equal(t, "{", lines[0])
	require.Equal(t, `  "width": 3,`, lines[1])
	require.Equal(t, `  "height": 2,`, lines[2])
}

func TestWriteJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, WriteJSONFile(path, smallReport()))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	got, err := ReadJSON(f)
	require.NoError(t, err)
	require.Empty(t, cmp.Diff(smallReport(), got))

	require.Error(t, WriteJSONFile(filepath.Join(t.TempDir(), "missing", "out.json"), smallReport()))
}

func TestReadJSONInvalid(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"syntax", `{"width":`},
		{"wrong type", `{"width":"wide"}`},
		{"empty maps", `{"width":3,"height":2,"tile":2,"tiles_x":2,"tiles_y":1,"anomalies":0}`},
		{"bad flag", `{"width":3,"height":2,"tile":2,"tiles_x":2,"tiles_y":1,"anomalies":0,` +
			`"mean_map":[0,0],"var_map":[0,0],"anom_map":[0,3]}`},
		{"count mismatch", `{"width":3,"height":2,"tile":2,"tiles_x":2,"tiles_y":1,"anomalies":2,` +
			`"mean_map":[0,0],"var_map":[0,0],"anom_map":[0,1]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.src))
			require.ErrorIs(t, err, errs.ErrInvalidReport)
		})
	}
}
