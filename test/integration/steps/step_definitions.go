//go:build integration

// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/timeflow/backend/config"
	"github.com/timeflow/backend/internal/application/adapter"
	"github.com/timeflow/backend/internal/application/usecase/timeentry"
	"github.com/timeflow/backend/internal/infra/dependency"
	"github.com/timeflow/backend/internal/integration/persistence"
	"github.com/timeflow/backend/internal/integration/persistence/model"
	"github.com/timeflow/backend/test/integration/mock"
)

const redisKeyPrefix = "bdd"

type testContext struct {
	server         *httptest.Server
	injector       *dependency.Injector
	headers        map[string]string
	client         *http.Client
	response       *response
	db             *mock.Db
	timeMock       *mock.Time
	backend        string
	lastEntryID    int64
	lastCategoryID int64
}

type response struct {
	status int
	body   any
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	test := &testContext{
		client:   &http.Client{Timeout: 10 * time.Second},
		timeMock: mock.NewTime(),
		db: mock.NewDb(map[string]any{
			"categories":   &model.CategoryModel{},
			"time_entries": &model.TimeEntryModel{},
			"sequences":    &model.SequenceModel{},
		}),
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before(sc)
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		test.after()
		return ctx, nil
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)
	ctx.Given(`^the current time is "([^"]*)"$`, test.theCurrentTimeIs)
	ctx.Given(`^(\d+) minutes pass$`, test.minutesPass)
	ctx.Given(`^the default categories exist$`, test.theDefaultCategoriesExist)
	ctx.Given(`^a time entry "([^"]*)" in "([^"]*)" from "([^"]*)" to "([^"]*)"$`, test.aTimeEntryInFromTo)

	// Header steps
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) items$`, test.theResponseFieldShouldHaveItems)

	// Storage assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)
	ctx.Then(`^redis should contain (\d+) "([^"]*)" rows$`, test.redisShouldContainRows)
}

// before resets storage and picks the backend from the scenario tags:
// @redis and @memory, otherwise the shared sqlite database.
func (t *testContext) before(sc *godog.Scenario) error {
	t.headers = make(map[string]string)
	t.response = nil
	t.lastEntryID = 0
	t.lastCategoryID = 0
	t.timeMock.SetCurrentTime(time.Now().UTC().Truncate(time.Second))

	t.backend = config.DriverSQLite
	for _, tag := range sc.Tags {
		switch tag.Name {
		case "@redis":
			t.backend = config.DriverRedis
		case "@memory":
			t.backend = config.DriverMemory
		}
	}

	if err := t.db.ClearDB(); err != nil {
		return err
	}
	return mock.ClearRedis(mock.NewRedis())
}

func (t *testContext) after() {
	if t.server != nil {
		t.server.Close()
		t.server = nil
	}
	t.injector = nil
}

func (t *testContext) provider() adapter.PersistenceProvider {
	switch t.backend {
	case config.DriverRedis:
		return persistence.NewRedisProvider(mock.NewRedis(), redisKeyPrefix)
	case config.DriverMemory:
		return persistence.NewMemoryProvider()
	default:
		return persistence.NewGormProvider(t.db.DbConn)
	}
}

func (t *testContext) theAPIServerIsRunning() error {
	cfg := config.Load()
	cfg.Server.Environment = "test"
	cfg.Persistence.Driver = t.backend

	t.injector = dependency.NewInjectorWithProvider(cfg, t.provider(), t.timeMock)
	t.server = httptest.NewServer(t.injector.Router.Setup(cfg.Server.Environment))
	return nil
}

func (t *testContext) theCurrentTimeIs(value string) error {
	now, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return fmt.Errorf("invalid time %q: %w", value, err)
	}
	t.timeMock.SetCurrentTime(now)
	return nil
}

func (t *testContext) minutesPass(minutes int) error {
	t.timeMock.Advance(time.Duration(minutes) * time.Minute)
	return nil
}

func (t *testContext) theDefaultCategoriesExist() error {
	if t.injector == nil {
		return errors.New("the API server is not running")
	}
	_, err := t.injector.Categories.Seed(context.Background())
	return err
}

func (t *testContext) aTimeEntryInFromTo(activity, category, from, to string) error {
	if t.injector == nil {
		return errors.New("the API server is not running")
	}

	start, err := time.Parse(time.RFC3339, from)
	if err != nil {
		return err
	}
	end, err := time.Parse(time.RFC3339, to)
	if err != nil {
		return err
	}

	entry, err := t.injector.TimeEntries.Create(context.Background(), timeentry.CreateTimeEntryInput{
		ActivityName: activity,
		Category:     category,
		StartTime:    start,
		EndTime:      &end,
	})
	if err != nil {
		return err
	}
	t.lastEntryID = entry.ID
	return nil
}

func (t *testContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = value
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	return t.executeRequest(method, t.replacePlaceholders(path), nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replacePlaceholders(body.Content))
	}
	return t.executeRequest(method, t.replacePlaceholders(path), payload)
}

func (t *testContext) replacePlaceholders(content string) string {
	content = strings.ReplaceAll(content, "{{entry_id}}", strconv.FormatInt(t.lastEntryID, 10))
	content = strings.ReplaceAll(content, "{{category_id}}", strconv.FormatInt(t.lastCategoryID, 10))
	content = strings.ReplaceAll(content, "{{today}}", t.timeMock.Now().Format("2006-01-02"))
	return content
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	if t.server == nil {
		return errors.New("the API server is not running")
	}

	var req *http.Request
	var err error

	url := t.server.URL + path

	if payload != nil {
		req, err = http.NewRequest(method, url, bytes.NewReader(payload))
	} else {
		req, err = http.NewRequest(method, url, nil)
	}
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")

	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{
		status: resp.StatusCode,
	}

	var responseBody map[string]any
	if err := json.Unmarshal(bodyBytes, &responseBody); err != nil {
		t.response.body = string(bodyBytes)
		return nil
	}
	t.response.body = responseBody

	if resp.StatusCode >= http.StatusBadRequest {
		return nil
	}

	// Capture ids of created or returned resources
	switch {
	case strings.HasPrefix(path, "/api/v1/categories"):
		if id, ok := responseBody["id"].(float64); ok {
			t.lastCategoryID = int64(id)
		}
	case strings.HasPrefix(path, "/api/v1/timer"):
		if entry, ok := responseBody["entry"].(map[string]any); ok {
			if id, ok := entry["id"].(float64); ok {
				t.lastEntryID = int64(id)
			}
		}
	case strings.HasPrefix(path, "/api/v1/time-entries"):
		if id, ok := responseBody["id"].(float64); ok {
			t.lastEntryID = int64(id)
		}
	}

	return nil
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expectedStatus, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldBeJSON() error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if _, ok := t.response.body.(map[string]any); !ok {
		return fmt.Errorf("response is not JSON: %v", t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldContain(field string) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}

	if _, exists := body[field]; !exists {
		return fmt.Errorf("response does not contain field '%s': %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}

	value := getFieldValue(body, field)
	if value == nil {
		if expectedValue == "null" {
			return nil
		}
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}

	actualValue := fmt.Sprintf("%v", value)
	if actualValue != expectedValue {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}

	if getFieldValue(body, field) == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldHaveItems(field string, quantity int) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}

	items, ok := getFieldValue(body, field).([]any)
	if !ok {
		return fmt.Errorf("field '%s' is not a list: %v", field, body)
	}
	if len(items) != quantity {
		return fmt.Errorf("field '%s' expected %d items, got %d", field, quantity, len(items))
	}
	return nil
}

func (t *testContext) jsonBody() (map[string]any, error) {
	if t.response == nil {
		return nil, errors.New("no response received")
	}

	body, ok := t.response.body.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}
	return body, nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	if entity, ok := t.db.GetModel(table); ok {
		entityType := reflect.TypeOf(entity).Elem()
		entitySlice := reflect.MakeSlice(reflect.SliceOf(entityType), 0, 0)
		entitySlicePtr := reflect.New(entitySlice.Type())
		entitySlicePtr.Elem().Set(entitySlice)

		result := t.db.DbConn.Unscoped().Find(entitySlicePtr.Interface())
		if result.Error != nil {
			return result.Error
		}

		count := entitySlicePtr.Elem().Len()
		if count != quantity {
			return fmt.Errorf("expected %d objects in '%s', got %d", quantity, table, count)
		}
		return nil
	}
	return fmt.Errorf("table '%s' not found in models", table)
}

func (t *testContext) theDbShouldContainObjectsInWithTheValues(quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(content.Content), &criteria); err != nil {
		return err
	}

	if entity, ok := t.db.GetModel(table); ok {
		entityType := reflect.TypeOf(entity).Elem()
		entitySlice := reflect.MakeSlice(reflect.SliceOf(entityType), 0, 0)
		entitySlicePtr := reflect.New(entitySlice.Type())
		entitySlicePtr.Elem().Set(entitySlice)

		query := t.db.DbConn.Unscoped()
		for key, value := range criteria {
			query = query.Where(fmt.Sprintf("%s = ?", key), value)
		}

		result := query.Find(entitySlicePtr.Interface())
		if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return result.Error
		}

		count := entitySlicePtr.Elem().Len()
		if count != quantity {
			return fmt.Errorf("expected %d objects in '%s' with criteria %v, got %d", quantity, table, criteria, count)
		}
		return nil
	}
	return fmt.Errorf("table '%s' not found in models", table)
}

func (t *testContext) redisShouldContainRows(quantity int, table string) error {
	keys, err := mock.RedisKeys(fmt.Sprintf("%s:%s:row:*", redisKeyPrefix, table))
	if err != nil {
		return err
	}
	if len(keys) != quantity {
		return fmt.Errorf("expected %d '%s' rows in redis, got %d (%v)", quantity, table, len(keys), keys)
	}
	return nil
}

func getFieldValue(object any, dotSeparatedField string) any {
	if object == nil {
		return nil
	}

	var objectMap map[string]any
	switch v := object.(type) {
	case map[string]any:
		objectMap = v
	default:
		objectJSON, _ := json.Marshal(object)
		if err := json.Unmarshal(objectJSON, &objectMap); err != nil {
			return nil
		}
	}

	fields := strings.Split(dotSeparatedField, ".")
	var field any = objectMap

	for _, currentField := range fields {
		if field == nil {
			return nil
		}

		if i, err := strconv.Atoi(currentField); err == nil {
			if arr, ok := field.([]any); ok && i < len(arr) {
				field = arr[i]
			} else {
				return nil
			}
		} else {
			if m, ok := field.(map[string]any); ok {
				field = m[currentField]
			} else {
				return nil
			}
		}
	}

	return field
}
