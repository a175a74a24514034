package trainer

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurlang/churn/boost"
	"github.com/neurlang/churn/datasets/telco"
	"github.com/neurlang/churn/logging"
	"github.com/neurlang/churn/net/pipeline"
)

func TestSampleSize(t *testing.T) {
	assert.Equal(t, 364, sampleSize(7043, 95))
	assert.Equal(t, 79, sampleSize(100, 95))
	assert.Equal(t, 9, sampleSize(10, 99))
	assert.Equal(t, 1, sampleSize(1, 95))
	assert.Equal(t, 0, sampleSize(0, 95))
	assert.Equal(t, 2.576, zScoreFromAlpha(1))
	assert.Equal(t, 1.645, zScoreFromAlpha(10))
}

func dataset(t *testing.T) string {
	t.Helper()
	name := filepath.Join(t.TempDir(), "telco.csv")
	file, err := os.Create(name)
	require.NoError(t, err)
	require.NoError(t, telco.Write(file, telco.Synthetic(300, 90, 4, 3)))
	require.NoError(t, file.Close())
	return name
}

func config(t *testing.T, data string) Config {
	h := boost.Defaults()
	h.Rounds = 25
	return Config{
		Dataset:         data,
		DstModel:        filepath.Join(t.TempDir(), "churn_model.json.sz"),
		HyperParameters: h,
		Significance:    95,
	}
}

func TestRun(t *testing.T) {
	cfg := config(t, dataset(t))
	var buf bytes.Buffer
	summary, err := Run(cfg, logging.New(&buf, logging.Config{Level: "info"}))
	require.NoError(t, err)

	assert.Equal(t, 300, summary.Report.Rows)
	assert.Equal(t, 4, summary.Report.DroppedRows)
	assert.Zero(t, summary.Report.Coercions())
	assert.Equal(t, sampleSize(296, 95), summary.Evaluation.Sampled)
	assert.Greater(t, summary.Evaluation.Accuracy, 0.8)

	log := buf.String()
	var last = -1
	for _, msg := range []string{
		"Script started...",
		"Data loaded successfully.",
		"Training the model...",
		"Model training complete.",
		"Model trained and saved successfully as '" + cfg.DstModel + "'!",
	} {
		i := strings.Index(log, msg)
		require.GreaterOrEqual(t, i, 0, msg)
		assert.Greater(t, i, last, msg)
		last = i
	}

	loaded, err := pipeline.ReadCompressedFromFile(cfg.DstModel)
	require.NoError(t, err)
	profile, err := telco.DefaultProfile().Frame()
	require.NoError(t, err)
	want, err := summary.Pipeline.PredictProba(profile)
	require.NoError(t, err)
	got, err := loaded.PredictProba(profile)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRunDeterministic(t *testing.T) {
	data := dataset(t)
	var prints [][32]byte
	for _, threads := range []int{1, 4} {
		cfg := config(t, data)
		cfg.HyperParameters.Threads = threads
		cfg.HyperParameters.Subsample = 0.8
		summary, err := Run(cfg, logging.New(&bytes.Buffer{}, logging.Config{}))
		require.NoError(t, err)
		prints = append(prints, summary.Evaluation.Fingerprint)
	}
	assert.Equal(t, prints[0], prints[1])
	assert.NotEqual(t, [32]byte{}, prints[0])
}

func TestRunMissingDataset(t *testing.T) {
	cfg := config(t, filepath.Join(t.TempDir(), "absent.csv"))
	_, err := Run(cfg, logging.New(&bytes.Buffer{}, logging.Config{}))
	assert.ErrorIs(t, err, fs.ErrNotExist)
	_, err = os.Stat(cfg.DstModel)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestRunReportsCoercions(t *testing.T) {
	raw := telco.Synthetic(120, 30, 0, 5)
	partner, err := raw.Text(telco.Partner)
	require.NoError(t, err)
	partner[0], partner[1] = "maybe", "yes"

	name := filepath.Join(t.TempDir(), "telco.csv")
	file, err := os.Create(name)
	require.NoError(t, err)
	require.NoError(t, telco.Write(file, raw))
	require.NoError(t, file.Close())

	var buf bytes.Buffer
	summary, err := Run(config(t, name), logging.New(&buf, logging.Config{}))
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Report.Coerced[telco.Partner])
	assert.Contains(t, buf.String(), "column=Partner count=2")
}
