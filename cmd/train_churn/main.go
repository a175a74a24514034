package main

import "errors"
import "flag"
import "fmt"
import "io/fs"
import "os"

import "github.com/neurlang/churn/config"
import "github.com/neurlang/churn/datasets/telco"
import "github.com/neurlang/churn/logging"
import "github.com/neurlang/churn/trainer"

func main() {
	configPath := flag.String("config", "", "optional YAML config file")
	dataset := flag.String("dataset", "", "telco customer churn .csv dataset, overrides data.path")
	dstmodel := flag.String("dstmodel", "", "model destination .json.sz file, overrides model.path")
	synthetic := flag.Int("synthetic", 0, "first write this many synthetic customers to the dataset path")
	seed := flag.Int64("seed", 1, "seed of the synthetic dataset")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if *dataset != "" {
		cfg.Data.Path = *dataset
	}
	if *dstmodel != "" {
		cfg.Model.Path = *dstmodel
	}
	log := logging.Init(cfg.Log)

	if *synthetic > 0 {
		if err := telco.WriteSynthetic(cfg.Data.Path, *synthetic, *seed); err != nil {
			log.Error("write synthetic dataset", "error", err)
			os.Exit(1)
		}
		log.Info("wrote synthetic dataset", "path", cfg.Data.Path, "rows", *synthetic)
	}

	h := cfg.HyperParameters()
	// log the training loss every ten rounds at debug level
	h.Printer = 10

	_, err = trainer.Run(trainer.Config{
		Dataset:         cfg.Data.Path,
		DstModel:        cfg.Model.Path,
		HyperParameters: h,
		Significance:    byte(cfg.Train.Significance),
	}, log)
	if errors.Is(err, fs.ErrNotExist) {
		log.Error(fmt.Sprintf("Error: The data file was not found. Make sure '%s' exists.", cfg.Data.Path), "error", err)
		os.Exit(1)
	}
	if err != nil {
		log.Error("training failed", "error", err)
		os.Exit(1)
	}
}
