package web

import (
	"encoding/json"
	"errors"
	"strconv"

	"textdiff/config"
	"textdiff/db"
	"textdiff/diff"

	"github.com/rohanthewiz/serr"
)

// diffRequest is the body accepted by every /api/diff endpoint.
type diffRequest struct {
	Original         string         `json:"original"`
	Modified         string         `json:"modified"`
	IgnoreWhitespace bool           `json:"ignoreWhitespace"`
	Algorithm        diff.Algorithm `json:"algorithm,omitempty"`
	ViewMode         string         `json:"viewMode,omitempty"`
	ContextLines     *int           `json:"contextLines,omitempty"`
	Format           string         `json:"format,omitempty"` // text endpoint: "plain" or "hunks"
	Title            string         `json:"title,omitempty"`  // history save only
}

func (r diffRequest) options() diff.Options {
	return diff.Options{IgnoreWhitespace: r.IgnoreWhitespace, Algorithm: r.Algorithm}
}

// requestError carries the HTTP status a decoding failure should answer with.
type requestError struct {
	status int
	err    error
}

func (e *requestError) Error() string { return e.err.Error() }
func (e *requestError) Unwrap() error { return e.err }

// statusOf returns the HTTP status for err, 500 unless it is a requestError.
func statusOf(err error) int {
	var re *requestError
	if errors.As(err, &re) {
		return re.status
	}
	return 500
}

// checkBodySize rejects bodies over the configured limit.
func checkBodySize(body []byte, limit int64) error {
	if limit > 0 && int64(len(body)) > limit {
		return &requestError{
			status: 413,
			err: serr.New("request body too large",
				"size", strconv.Itoa(len(body)), "limit", strconv.FormatInt(limit, 10)),
		}
	}
	return nil
}

// decodeDiffRequest validates and parses a diff request body.
func decodeDiffRequest(body []byte, limit int64) (diffRequest, error) {
	var req diffRequest
	if err := checkBodySize(body, limit); err != nil {
		return req, err
	}
	if err := json.Unmarshal(body, &req); err != nil {
		return req, &requestError{status: 400, err: serr.Wrap(err, "invalid request body")}
	}
	switch req.ViewMode {
	case "":
		req.ViewMode = db.ViewUnified
	case db.ViewUnified, db.ViewSplit:
	default:
		return req, &requestError{status: 400, err: serr.New("invalid view mode", "viewMode", req.ViewMode)}
	}
	switch req.Algorithm {
	case "", diff.AlgorithmMyers, diff.AlgorithmLCS:
	default:
		return req, &requestError{status: 400, err: serr.New("unknown diff algorithm", "algorithm", string(req.Algorithm))}
	}
	return req, nil
}

// contextLines picks the request's context size, or the configured default.
func (r diffRequest) contextLines(cfg *config.Config) int {
	if r.ContextLines != nil {
		return *r.ContextLines
	}
	return cfg.ContextLines
}

// diffText renders a result as the plain text offered for copy and download.
func diffText(result *diff.DiffResult, format string, contextLines int) (string, error) {
	switch format {
	case "", "plain":
		return diff.FormatUnified(result.Unified.Lines), nil
	case "hunks":
		return diff.FormatHunks(diff.Hunks(result.Unified.Lines, contextLines)), nil
	case "split":
		return diff.FormatSplit(result.Split.Rows), nil
	}
	return "", &requestError{status: 400, err: serr.New("unknown text format", "format", format)}
}
