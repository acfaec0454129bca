package rules_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/gamehost/internal/domain"
	"github.com/davidbz/gamehost/internal/rules"
)

func TestDefault(t *testing.T) {
	table, err := rules.Default()
	require.NoError(t, err)

	require.Equal(t, "2025-08-01", table.Version)
	require.Equal(t, domain.GBP, table.Currency)
	require.Equal(t, int64(150), table.BaseFee)
	require.Equal(t, int64(3), table.PerPlayerFee)
	require.Equal(t, int64(100), table.PerRAMGBFee)
	require.Equal(t, int64(2), table.PerStorageGBFee)
	require.Equal(t, domain.DefaultSchema(), table.Schema())

	surcharge, ok := table.Surcharge(domain.SupportPriority)
	require.True(t, ok)
	require.Equal(t, int64(300), surcharge)

	for _, region := range []domain.Region{domain.RegionLondon, domain.RegionFrankfurt, domain.RegionDallas} {
		factor, ok := table.Factor(region)
		require.True(t, ok)
		require.Equal(t, "1", factor.String())
	}
}

func TestLoad(t *testing.T) {
	t.Run("should fall back to the embedded table", func(t *testing.T) {
		table, err := rules.Load("")
		require.NoError(t, err)
		require.Equal(t, "2025-08-01", table.Version)
	})

	t.Run("should read an override file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "rules.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
version: "2026-01-01"
currency: {code: gbp, symbol: "£", exponent: 2}
bounds:
  players: {min: 10, max: 1000}
  ramGb: {min: 1, max: 128}
  storageGb: {min: 10, max: 500}
baseFee: 200
perPlayerFee: 3
perRamGbFee: 100
perStorageGbFee: 2
support:
  - {tier: standard, label: Standard, surcharge: 0}
regions:
  - {region: london, label: London, factor: "1.0"}
  - {region: sydney, label: Sydney, factor: "1.15"}
`), 0o600))

		table, err := rules.Load(path)
		require.NoError(t, err)
		require.Equal(t, "2026-01-01", table.Version)
		require.Equal(t, 1000, table.Players.Max)

		factor, ok := table.Factor("sydney")
		require.True(t, ok)
		require.Equal(t, "1.15", factor.String())
	})

	t.Run("should fail on a missing file", func(t *testing.T) {
		_, err := rules.Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.ErrorContains(t, err, "failed to read rules file")
	})
}

func TestParseYAML_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{name: "not yaml", doc: "version: [", wantErr: "failed to parse"},
		{name: "bad factor", doc: `
version: v
currency: {code: gbp}
support: [{tier: standard}]
regions: [{region: london, factor: "abc"}]
`, wantErr: "invalid factor"},
		{name: "no regions", doc: `
version: v
currency: {code: gbp}
support: [{tier: standard}]
`, wantErr: "at least one region"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := rules.ParseYAML([]byte(tt.doc))
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestDocument_JSONRoundTrip(t *testing.T) {
	table, err := rules.Default()
	require.NoError(t, err)

	data, err := json.Marshal(rules.FromTable(table))
	require.NoError(t, err)

	decoded, err := rules.DecodeJSON(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, table.Fingerprint(), decoded.Fingerprint())
	require.Equal(t, table.Support, decoded.Support)

	t.Run("should detect a tampered document", func(t *testing.T) {
		doc := rules.FromTable(table)
		doc.BaseFee = 1

		data, err := json.Marshal(doc)
		require.NoError(t, err)

		_, err = rules.DecodeJSON(bytes.NewReader(data))
		require.ErrorContains(t, err, "fingerprint mismatch")
	})
}
