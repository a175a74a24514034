package trainer

import "fmt"
import "log/slog"

import "github.com/neurlang/churn/boost"
import "github.com/neurlang/churn/datasets/telco"
import "github.com/neurlang/churn/net/pipeline"

// Config names the input dataset, the output artifact and the hyper parameters
type Config struct {
	Dataset  string
	DstModel string

	HyperParameters boost.HyperParameters

	// Significance sizes the evaluation sample, in percent
	Significance byte
}

// Summary describes a finished run
type Summary struct {
	Report     telco.Report
	Evaluation Evaluation
	Pipeline   *pipeline.Pipeline
}

// Run trains the churn pipeline from cfg.Dataset and writes it to cfg.DstModel.
// A missing dataset yields an error matching fs.ErrNotExist and nothing is written.
func Run(cfg Config, log *slog.Logger) (*Summary, error) {
	if log == nil {
		log = slog.Default()
	}
	log.Info("Script started...")

	raw, err := telco.Load(cfg.Dataset)
	if err != nil {
		return nil, fmt.Errorf("trainer: the data file was not found or is unreadable: %w", err)
	}
	log.Info("Data loaded successfully.", "path", cfg.Dataset, "rows", raw.Len())

	features, labels, report, err := telco.Clean(raw)
	if err != nil {
		return nil, err
	}
	if report.DroppedRows > 0 {
		log.Info("Rows without a numeric TotalCharges dropped", "rows", report.DroppedRows)
	}
	for _, field := range telco.Schema {
		if n := report.Coerced[field.Name]; n > 0 {
			log.Warn("Values other than Yes/No taken as 0", "column", field.Name, "count", n)
		}
	}

	log.Info("Training the model... This might take a moment.", "rows", features.Len(), "rounds", cfg.HyperParameters.Rounds)
	p, err := pipeline.Fit(features, labels, telco.NumericalFeatures(), telco.CategoricalFeatures(), cfg.HyperParameters)
	if err != nil {
		return nil, fmt.Errorf("trainer: fit: %w", err)
	}
	log.Info("Model training complete.", "features", p.Columns.Width(), "trees", len(p.Model.Trees))

	eval, err := Evaluate(p, features, labels, cfg.Significance)
	if err != nil {
		return nil, fmt.Errorf("trainer: evaluate: %w", err)
	}
	log.Info("Training evaluation", "sampled", eval.Sampled, "accuracy", eval.Accuracy, "logloss", eval.LogLoss,
		"fingerprint", fmt.Sprintf("%x", eval.Fingerprint[:8]))

	if err := p.WriteCompressedToFile(cfg.DstModel); err != nil {
		return nil, fmt.Errorf("trainer: save: %w", err)
	}
	log.Info(fmt.Sprintf("Model trained and saved successfully as '%s'!", cfg.DstModel))

	return &Summary{Report: report, Evaluation: eval, Pipeline: p}, nil
}
