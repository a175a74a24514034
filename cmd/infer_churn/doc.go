// Package main scores one hypothetical customer with a trained churn artifact from the
// command line, taking the same inputs as the dashboard prediction form.
package main
