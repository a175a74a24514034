package main

import "encoding/json"
import "flag"
import "fmt"
import "os"
import "strconv"
import "strings"

import "github.com/neurlang/churn/config"
import "github.com/neurlang/churn/datasets/telco"
import "github.com/neurlang/churn/inference"
import "github.com/neurlang/churn/logging"
import "github.com/neurlang/churn/net/pipeline"

func main() {
	configPath := flag.String("config", "", "optional YAML config file")
	model := flag.String("model", "", "trained .json.sz model, overrides model.path")
	asJSON := flag.Bool("json", false, "print the result as JSON")

	var values = make(map[string]*string)
	for _, c := range telco.Choices {
		values[c.Field] = flag.String(c.Field, c.Options[0], c.Label+" ("+strings.Join(c.Options, ", ")+")")
	}
	for _, r := range telco.Ranges {
		usage := fmt.Sprintf("%s (%v to %v)", r.Label, r.Min, r.Max)
		values[r.Field] = flag.String(r.Field, strconv.FormatFloat(r.Default, 'f', -1, 64), usage)
	}
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if *model != "" {
		cfg.Model.Path = *model
	}
	log := logging.Init(cfg.Log)

	var profile = telco.DefaultProfile()
	for field, v := range values {
		if err := profile.Set(field, *v); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
	}

	p, err := pipeline.ReadCompressedFromFile(cfg.Model.Path)
	if err != nil {
		log.Error("load model", "path", cfg.Model.Path, "error", err)
		os.Exit(1)
	}
	res, err := inference.Predict(p, profile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}
	fmt.Printf("[%-50s] %d%%\n", strings.Repeat("#", res.Progress/2), res.Progress)
	fmt.Println(res.Message)
	fmt.Println(res.Advice)
}
