package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/cucumber/godog"
	"github.com/cucumber/godog/colors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/expense-tracker/backend/config"
	"github.com/expense-tracker/backend/internal/application/usecase/category"
	"github.com/expense-tracker/backend/internal/infra/dependency"
	"github.com/expense-tracker/backend/internal/integration/adapters"
	"github.com/expense-tracker/backend/internal/integration/cache"
	"github.com/expense-tracker/backend/internal/integration/email"
	"github.com/expense-tracker/backend/internal/integration/persistence/persistencetest"
)

const testJWTSecret = "test-jwt-secret-key-for-testing-purposes"

// TestFeatures runs the BDD scenarios under features/ against the fully wired API.
func TestFeatures(t *testing.T) {
	opts := godog.Options{
		Format:      "pretty",
		Paths:       []string{"features"},
		Output:      colors.Colored(os.Stdout),
		Concurrency: 1,
		Randomize:   0,
		Strict:      true,
		TestingT:    t,
	}
	if tags := os.Getenv("GODOG_TAGS"); tags != "" {
		opts.Tags = tags
	}

	suite := godog.TestSuite{
		Name: "expense-tracker-api",
		TestSuiteInitializer: func(ctx *godog.TestSuiteContext) {
			ctx.BeforeSuite(func() { gin.SetMode(gin.TestMode) })
		},
		ScenarioInitializer: func(sc *godog.ScenarioContext) {
			initializeScenario(t, sc)
		},
		Options: &opts,
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

// testContext holds the state of a single scenario.
type testContext struct {
	t        testing.TB
	engine   *gin.Engine
	injector *dependency.Injector
	redis    *miniredis.Miniredis
	sender   *email.MockEmailSender
	tokens   *adapters.TokenService

	accessToken  string
	response     *httptest.ResponseRecorder
	responseJSON interface{}
	saved        map[string]string
}

func initializeScenario(t *testing.T, sc *godog.ScenarioContext) {
	tc := &testContext{t: t}

	sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		return ctx, tc.setup()
	})
	sc.After(func(ctx context.Context, _ *godog.Scenario, _ error) (context.Context, error) {
		if tc.redis != nil {
			tc.redis.Close()
		}
		return ctx, nil
	})

	// Setup steps
	sc.Step(`^the global categories are seeded$`, tc.theGlobalCategoriesAreSeeded)
	sc.Step(`^I am authenticated as "([^"]*)"$`, tc.iAmAuthenticatedAs)
	sc.Step(`^I am not authenticated$`, tc.iAmNotAuthenticated)
	sc.Step(`^the analytics cache is unavailable$`, tc.theAnalyticsCacheIsUnavailable)

	// Request steps
	sc.Step(`^I send a "([^"]*)" request to "([^"]*)"$`, tc.iSendARequestTo)
	sc.Step(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, tc.iSendARequestToWithBody)
	sc.Step(`^I save the response field "([^"]*)" as "([^"]*)"$`, tc.iSaveTheResponseFieldAs)
	sc.Step(`^the email worker runs$`, tc.theEmailWorkerRuns)

	// Response assertion steps
	sc.Step(`^the response status should be (\d+)$`, tc.theResponseStatusShouldBe)
	sc.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, tc.theResponseFieldShouldBe)
	sc.Step(`^the response field "([^"]*)" should be null$`, tc.theResponseFieldShouldBeNull)
	sc.Step(`^the response field "([^"]*)" should have (\d+) items?$`, tc.theResponseFieldShouldHaveItems)
	sc.Step(`^the response should contain "([^"]*)"$`, tc.theResponseShouldContain)
	sc.Step(`^the response should not contain "([^"]*)"$`, tc.theResponseShouldNotContain)

	// Email assertion steps
	sc.Step(`^"([^"]*)" should have received (\d+) emails?$`, tc.shouldHaveReceivedEmails)
	sc.Step(`^the last email to "([^"]*)" should mention "([^"]*)"$`, tc.theLastEmailShouldMention)
}

func (tc *testContext) setup() error {
	tc.accessToken = ""
	tc.response = nil
	tc.responseJSON = nil
	tc.saved = make(map[string]string)

	mr, err := miniredis.Run()
	if err != nil {
		return fmt.Errorf("failed to start miniredis: %w", err)
	}
	tc.redis = mr
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	cfg := &config.Config{
		Server:    config.ServerConfig{Environment: "test"},
		JWT:       config.JWTConfig{Secret: testJWTSecret},
		Email:     config.EmailConfig{AppBaseURL: "http://localhost:5173", BatchSize: 10, PollInterval: time.Second},
		RateLimit: config.RateLimitConfig{Requests: 1000, Window: time.Minute},
	}

	tc.tokens = adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.Issuer)
	tc.sender = email.NewMockEmailSender()

	injector, err := dependency.NewInjector(cfg, persistencetest.NewDB(tc.t), dependency.Externals{
		Cache:       cache.NewRedisCache(client, time.Minute),
		EmailSender: tc.sender,
		Tokens:      tc.tokens,
	})
	if err != nil {
		return err
	}
	tc.injector = injector
	tc.engine = injector.Router.Setup(cfg.Server.Environment)
	return nil
}

// Setup steps

func (tc *testContext) theGlobalCategoriesAreSeeded() error {
	_, err := tc.injector.SeedUseCase.Execute(context.Background(), category.SeedGlobalCategoriesInput{
		Names: category.DefaultGlobalCategories,
	})
	return err
}

// iAmAuthenticatedAs signs a token for a stable per-email identity, so
// switching back to an earlier user resumes the same account.
func (tc *testContext) iAmAuthenticatedAs(emailAddr string) error {
	userID := uuid.NewSHA1(uuid.NameSpaceURL, []byte(emailAddr))
	name := strings.SplitN(emailAddr, "@", 2)[0]
	token, err := tc.tokens.GenerateAccessToken(userID, emailAddr, name, time.Hour)
	if err != nil {
		return err
	}
	tc.accessToken = token
	return nil
}

func (tc *testContext) iAmNotAuthenticated() error {
	tc.accessToken = ""
	return nil
}

func (tc *testContext) theAnalyticsCacheIsUnavailable() error {
	tc.redis.Close()
	return nil
}

// Request steps

func (tc *testContext) iSendARequestTo(method, path string) error {
	return tc.send(method, path, "")
}

func (tc *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	return tc.send(method, path, body.Content)
}

func (tc *testContext) send(method, path, body string) error {
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(tc.expand(body)))
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, tc.expand(path), reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if tc.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+tc.accessToken)
	}

	tc.response = httptest.NewRecorder()
	tc.engine.ServeHTTP(tc.response, req)

	tc.responseJSON = nil
	if tc.response.Body.Len() > 0 {
		if err := json.Unmarshal(tc.response.Body.Bytes(), &tc.responseJSON); err != nil {
			return fmt.Errorf("response is not JSON: %w: %s", err, tc.response.Body.String())
		}
	}
	return nil
}

// expand replaces {name} placeholders with saved response values and the
// calendar-relative tokens {today}, {this_month} and {last_month}.
func (tc *testContext) expand(s string) string {
	now := time.Now().UTC()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	lastMonth := firstOfMonth.AddDate(0, -1, 0)

	pairs := []string{
		"{today}", now.Format("2006-01-02"),
		"{this_month}", firstOfMonth.Format("2006-01"),
		"{last_month}", lastMonth.Format("2006-01"),
		"{last_month_day}", lastMonth.AddDate(0, 0, 14).Format("2006-01-02"),
	}
	for k, v := range tc.saved {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(s)
}

func (tc *testContext) iSaveTheResponseFieldAs(field, name string) error {
	value, err := tc.field(field)
	if err != nil {
		return err
	}
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("field %q is %T, not a string", field, value)
	}
	tc.saved[name] = s
	return nil
}

func (tc *testContext) theEmailWorkerRuns() error {
	tc.injector.EmailWorker.ProcessNow(context.Background())
	return nil
}

// Response assertion steps

func (tc *testContext) theResponseStatusShouldBe(status int) error {
	if tc.response == nil {
		return fmt.Errorf("no request was sent")
	}
	if tc.response.Code != status {
		return fmt.Errorf("expected status %d, got %d: %s", status, tc.response.Code, tc.response.Body.String())
	}
	return nil
}

func (tc *testContext) theResponseFieldShouldBe(field, expected string) error {
	value, err := tc.field(field)
	if err != nil {
		return err
	}
	expected = tc.expand(expected)

	var actual string
	switch v := value.(type) {
	case string:
		actual = v
	case bool:
		actual = strconv.FormatBool(v)
	case float64:
		actual = strconv.FormatFloat(v, 'f', -1, 64)
	case nil:
		actual = "null"
	default:
		return fmt.Errorf("field %q is %T, not a scalar", field, value)
	}
	if actual != expected {
		return fmt.Errorf("expected field %q to be %q, got %q", field, expected, actual)
	}
	return nil
}

func (tc *testContext) theResponseFieldShouldBeNull(field string) error {
	value, err := tc.field(field)
	if err != nil {
		return err
	}
	if value != nil {
		return fmt.Errorf("expected field %q to be null, got %v", field, value)
	}
	return nil
}

func (tc *testContext) theResponseFieldShouldHaveItems(field string, count int) error {
	value, err := tc.field(field)
	if err != nil {
		return err
	}
	items, ok := value.([]interface{})
	if !ok {
		return fmt.Errorf("field %q is %T, not an array", field, value)
	}
	if len(items) != count {
		return fmt.Errorf("expected %d items in %q, got %d", count, field, len(items))
	}
	return nil
}

func (tc *testContext) theResponseShouldContain(text string) error {
	if !strings.Contains(tc.response.Body.String(), tc.expand(text)) {
		return fmt.Errorf("expected response to contain %q, got %s", text, tc.response.Body.String())
	}
	return nil
}

func (tc *testContext) theResponseShouldNotContain(text string) error {
	if strings.Contains(tc.response.Body.String(), tc.expand(text)) {
		return fmt.Errorf("expected response not to contain %q, got %s", text, tc.response.Body.String())
	}
	return nil
}

// field walks a dotted path such as "lines.0.spent" through the decoded body.
func (tc *testContext) field(path string) (interface{}, error) {
	current := tc.responseJSON
	for _, part := range strings.Split(path, ".") {
		switch node := current.(type) {
		case map[string]interface{}:
			next, ok := node[part]
			if !ok {
				return nil, fmt.Errorf("field %q not found in %s", path, tc.response.Body.String())
			}
			current = next
		case []interface{}:
			i, err := strconv.Atoi(part)
			if err != nil || i < 0 || i >= len(node) {
				return nil, fmt.Errorf("index %q out of range in %q", part, path)
			}
			current = node[i]
		default:
			return nil, fmt.Errorf("cannot descend into %q of %q", part, path)
		}
	}
	return current, nil
}

// Email assertion steps

func (tc *testContext) shouldHaveReceivedEmails(to string, count int) error {
	got := 0
	for _, sent := range tc.sender.Sent() {
		if sent.To == to {
			got++
		}
	}
	if got != count {
		return fmt.Errorf("expected %d emails to %s, got %d", count, to, got)
	}
	return nil
}

func (tc *testContext) theLastEmailShouldMention(to, text string) error {
	sent := tc.sender.Sent()
	for i := len(sent) - 1; i >= 0; i-- {
		if sent[i].To != to {
			continue
		}
		body := sent[i].Subject + "\n" + sent[i].Text
		if !strings.Contains(body, text) {
			return fmt.Errorf("expected email to %s to mention %q, got %q", to, text, body)
		}
		return nil
	}
	return fmt.Errorf("no email sent to %s", to)
}
