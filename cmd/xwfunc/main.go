// Command xwfunc exposes crossword grid generation as an HTTP Cloud
// Function, sourcing its word list from BigQuery.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"

	"crosswarped.com/wizium"
	"crosswarped.com/wizium/pkg/dictionary"
	"crosswarped.com/wizium/pkg/solver"
)

var logger *zap.SugaredLogger

func init() {
	base, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("zap.NewProduction: %v", err)
	}
	logger = base.Sugar()
}

// GenerateGridRequest describes one generation request.
type GenerateGridRequest struct {
	Width          int      `json:"width"`
	Height         int      `json:"height"`
	WordScope      string   `json:"wordScope"`
	IncludeObscure bool     `json:"includeObscure"`
	PreferredWords []string `json:"preferredWords"`
	MaxBlackBoxes  int32    `json:"maxBlackBoxes"`
	BlackMode      string   `json:"blackMode"`
	Seed           uint32   `json:"seed"`
	TimeoutSeconds int      `json:"timeoutSeconds"`
}

// GenerateGridResponse reports the outcome of a generation request.
type GenerateGridResponse struct {
	Success   bool     `json:"success"`
	Grid      []string `json:"grid,omitempty"`
	FillRate  int      `json:"fillRate"`
	RequestID string   `json:"requestId"`
	Error     string   `json:"error,omitempty"`
}

func wordsTable() string {
	if t := os.Getenv("WORDS_TABLE"); t != "" {
		return t
	}
	return "xword-x.FirestoreQuery.all_words"
}

func loadWordsFromBigQuery(ctx context.Context, scope string, includeObscure bool) ([][]byte, error) {
	client, err := bigquery.NewClient(ctx, "xword-x")
	if err != nil {
		return nil, fmt.Errorf("bigquery.NewClient: %w", err)
	}
	defer client.Close()

	obscureValues := []string{"false"}
	if includeObscure {
		obscureValues = append(obscureValues, "true")
	}
	query := fmt.Sprintf(
		"SELECT word_key FROM `%s` WHERE scope = %q AND obscure IN (%s)",
		wordsTable(), scope, strings.Join(obscureValues, ","),
	)
	q := client.Query(query)
	q.Location = "US"

	job, err := q.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("q.Run: %w", err)
	}
	status, err := job.Wait(ctx)
	if err != nil {
		return nil, fmt.Errorf("job.Wait: %w", err)
	}
	if err := status.Err(); err != nil {
		return nil, fmt.Errorf("status.Err: %w", err)
	}
	it, err := job.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("job.Read: %w", err)
	}

	var words [][]byte
	for {
		var row []bigquery.Value
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("it.Next: %w", err)
		}
		word, ok := row[0].(string)
		if !ok {
			return nil, fmt.Errorf("row[0] is not a string: %v", row[0])
		}
		if encoded, ok := dictionary.EncodeWord(word); ok {
			words = append(words, encoded)
		}
	}
	return words, nil
}

func parseBlackMode(s string) solver.BlackMode {
	switch strings.ToLower(s) {
	case "single":
		return solver.BlackSingle
	case "two":
		return solver.BlackTwo
	case "diagonal", "diag":
		return solver.BlackDiagonal
	default:
		return solver.BlackAny
	}
}

func execute(ctx context.Context, log *zap.SugaredLogger, req GenerateGridRequest) (*GenerateGridResponse, error) {
	if req.Width < 3 || req.Height < 3 {
		return nil, fmt.Errorf("width and height must be at least 3")
	}

	var words [][]byte
	for _, w := range req.PreferredWords {
		if encoded, ok := dictionary.EncodeWord(strings.ToLower(w)); ok {
			words = append(words, encoded)
		}
	}

	if req.WordScope != "" {
		fetched, err := loadWordsFromBigQuery(ctx, req.WordScope, req.IncludeObscure)
		if err != nil {
			return nil, fmt.Errorf("loadWordsFromBigQuery: %w", err)
		}
		log.Infow("fetched words from BigQuery", "scope", req.WordScope, "count", len(fetched))
		words = append(words, fetched...)
	}

	if len(words) == 0 {
		return nil, fmt.Errorf("no words available: provide preferredWords or wordScope")
	}

	m := wizium.New(wizium.ModuleConfig{AlphabetSize: 26, MaxWordLength: dictionary.MaxWordLength})
	m.AddWords(words)
	m.SetGridSize(req.Width, req.Height)

	timeout := time.Duration(req.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline) - 2*time.Second; remaining < timeout {
			timeout = remaining
		}
	}

	cfg := solver.Config{
		Seed:           req.Seed,
		MaxBlackBoxes:  req.MaxBlackBoxes,
		HeuristicLevel: 6,
		BlackMode:      parseBlackMode(req.BlackMode),
	}

	m.StartSolver(cfg)
	status := m.SolverStep(timeout, 0)
	m.SolverStop()

	return &GenerateGridResponse{
		Success:  status.FillRate == 100,
		Grid:     m.ReadGridText(),
		FillRate: status.FillRate,
	}, nil
}

func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Content-Type", "application/json")
}

func generateGrid(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		fmt.Fprintf(w, `{"success": false, "error": "method %s not allowed"}`, r.Method)
		return
	}

	requestID := uuid.NewString()
	log := logger.With("requestId", requestID)

	var req GenerateGridRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warnw("invalid request body", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(GenerateGridResponse{RequestID: requestID, Error: fmt.Sprintf("invalid JSON: %v", err)})
		return
	}

	resp, err := execute(r.Context(), log, req)
	if err != nil {
		log.Errorw("generation failed", "error", err)
		resp = &GenerateGridResponse{Error: err.Error()}
	}
	resp.RequestID = requestID

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Errorw("encoding response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"success": false, "error": "internal server error"}`)
	}
}

func main() {
	funcframework.RegisterHTTPFunction("/generate-grid", generateGrid)

	port := "8080"
	if envPort := os.Getenv("PORT"); envPort != "" {
		port = envPort
	}
	hostname := ""
	if os.Getenv("LOCAL_ONLY") == "true" {
		hostname = "127.0.0.1"
	}
	if err := funcframework.StartHostPort(hostname, port); err != nil {
		logger.Fatalw("funcframework.StartHostPort", "error", err)
	}
}
