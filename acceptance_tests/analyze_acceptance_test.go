package acceptance_tests

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"food-analyzer/internal/analysis"
	"food-analyzer/internal/auth"
	"food-analyzer/internal/llm"
	"food-analyzer/internal/meal"
	"food-analyzer/internal/recipe"
	"food-analyzer/internal/server"
)

// --- Mock model clients ---

type mockVisionClient struct {
	calls int
	fail  bool
}

func (m *mockVisionClient) GenerateFromImage(_ context.Context, _ string, _ string, _ []byte) (llm.ContentResponse, error) {
	m.calls++
	if m.fail {
		return llm.ContentResponse{}, errors.New("mock vision outage")
	}
	return llm.ContentResponse{Content: "Chicken curry\n" +
		"Visible Ingredients:\n" +
		"Chicken | 150 | g | pieces in sauce\n" +
		"Rice | 200 | g | served alongside"}, nil
}

type mockTextClient struct {
	calls int
	fail  bool
}

func (m *mockTextClient) GenerateContent(_ context.Context, prompt string) (llm.ContentResponse, error) {
	m.calls++
	if m.fail {
		return llm.ContentResponse{}, errors.New("mock text outage")
	}
	if strings.Contains(prompt, "hidden/non-visible ingredients") {
		return llm.ContentResponse{Content: "Cooking oil | 2 | tbsp | frying the chicken"}, nil
	}
	return llm.ContentResponse{Content: "Calories | 650 | kcal | estimated total\n" +
		"Protein | 35 | g | from chicken\n" +
		"Fat | 22 | g | oil and meat\n" +
		"Carbohydrates | 70 | g | mostly rice\n" +
		"Fiber | 4 | g | vegetables\n" +
		"Sugar | 6 | g | sauce\n" +
		"Sodium | 900 | mg | seasoning"}, nil
}

// --- Helpers ---

func buildRouter(t *testing.T, vision *mockVisionClient, text *mockTextClient) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	analyzer := analysis.NewAnalyzer(vision, text, recipe.NewCatalog(recipe.NewMemoryStore()), analysis.Options{
		MaxAttempts: 2,
		BackoffBase: time.Millisecond,
		Timeout:     10 * time.Second,
	})
	authSvc := auth.NewService(auth.NewInMemoryUserRepository(), auth.NewInMemoryProfileRepository())
	tokens := auth.NewTokenManager("acceptance-secret")
	meals := meal.NewService(meal.NewInMemoryRepository())
	clipper := recipe.NewClipper(text)

	return server.NewServer(analyzer, authSvc, tokens, meals, clipper, nil).Router()
}

func mealPhoto(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 3), G: 180, B: uint8(y * 3), A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode photo: %v", err)
	}
	return buf.Bytes()
}

func postAnalyze(t *testing.T, router *gin.Engine, photo []byte, userID string) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("image", "meal.png")
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	part.Write(photo)
	mw.WriteField("user_id", userID)
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/analyze", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// --- Tests ---

func TestAnalyzeEndToEnd(t *testing.T) {
	vision := &mockVisionClient{}
	text := &mockTextClient{}
	router := buildRouter(t, vision, text)

	w := postAnalyze(t, router, mealPhoto(t, 400, 300), "user-accept")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		DishPrediction    string  `json:"dish_prediction"`
		ImageDescription  string  `json:"image_description"`
		HiddenIngredients string  `json:"hidden_ingredients"`
		NutritionInfo     string  `json:"nutrition_info"`
		AnalysisTime      float64 `json:"analysis_time"`
		UserID            string  `json:"user_id"`
		Status            string  `json:"status"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Status != "success" {
		t.Errorf("expected success status, got %q", resp.Status)
	}
	if resp.DishPrediction != "Chicken curry" {
		t.Errorf("unexpected dish: %q", resp.DishPrediction)
	}
	if resp.UserID != "user-accept" {
		t.Errorf("user id did not round-trip: %q", resp.UserID)
	}

	nutrients, skipped := analysis.ParseLines(resp.NutritionInfo)
	if skipped != 0 {
		t.Errorf("nutrition block must be fully parseable, %d lines skipped", skipped)
	}
	if len(nutrients) != 7 {
		t.Errorf("expected the full 7-nutrient vocabulary, got %d", len(nutrients))
	}

	if vision.calls != 1 || text.calls != 2 {
		t.Errorf("expected 1 vision and 2 text calls, got %d/%d", vision.calls, text.calls)
	}
}

func TestAnalyzeDegradesToFallbacks(t *testing.T) {
	vision := &mockVisionClient{}
	text := &mockTextClient{fail: true}
	router := buildRouter(t, vision, text)

	w := postAnalyze(t, router, mealPhoto(t, 400, 300), "user-accept")
	if w.Code != http.StatusOK {
		t.Fatalf("degraded analysis must still answer 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	wantHidden := "Cooking oil | 2 | tbsp | Used for cooking dishes\n" +
		"Salt | 1 | tsp | Basic seasoning for dishes\n" +
		"Water | 250 | ml | Used for cooking rice/grains"
	if resp["hidden_ingredients"] != wantHidden {
		t.Errorf("expected static hidden fallback block, got:\n%v", resp["hidden_ingredients"])
	}

	nutrients, _ := analysis.ParseLines(fmt.Sprint(resp["nutrition_info"]))
	if len(nutrients) != 7 {
		t.Fatalf("expected 7 nutrients in the degraded block, got %d", len(nutrients))
	}
	for _, n := range nutrients {
		if n.Quantity != 0 {
			t.Errorf("degraded %s should be zeroed, got %v", n.Name, n.Quantity)
		}
	}
}

func TestAnalyzeRejectsTinyImage(t *testing.T) {
	vision := &mockVisionClient{}
	text := &mockTextClient{}
	router := buildRouter(t, vision, text)

	w := postAnalyze(t, router, mealPhoto(t, 50, 50), "user-accept")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for an undersized image, got %d", w.Code)
	}
	if vision.calls != 0 || text.calls != 0 {
		t.Errorf("rejected input must not reach the model, got %d/%d calls", vision.calls, text.calls)
	}
}
