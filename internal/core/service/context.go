package service

import "context"

type resultsKey struct{}

// ContextWithResults returns a copy of ctx carrying the tokens generated
// for the current request.
func ContextWithResults(ctx context.Context, results []Result) context.Context {
	return context.WithValue(ctx, resultsKey{}, results)
}

// ResultsFromContext returns the tokens stored by ContextWithResults.
func ResultsFromContext(ctx context.Context) []Result {
	results, _ := ctx.Value(resultsKey{}).([]Result)
	return results
}

// ResultValue returns the value of the named token in ctx.
func ResultValue(ctx context.Context, name string) (string, bool) {
	for _, r := range ResultsFromContext(ctx) {
		if r.Name == name {
			return r.Value, true
		}
	}
	return "", false
}
