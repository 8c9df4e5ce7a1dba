// Package firestore stores records in Google Cloud Firestore through its REST API.
package firestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/mamadbah2/boutique/internal/config"
	"github.com/mamadbah2/boutique/internal/domain/models"
	"github.com/mamadbah2/boutique/internal/repository/records"
)

const defaultPageSize = 300

// FirestoreRepository implements records.Store against the Firestore v1 REST API.
type FirestoreRepository struct {
	httpClient *resty.Client
	pageSize   int
	logger     *zap.Logger
}

var _ records.Store = (*FirestoreRepository)(nil)

// NewFirestoreRepository builds a REST client scoped to the configured database.
func NewFirestoreRepository(cfg config.FirestoreConfig, logger *zap.Logger) (*FirestoreRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ProjectID == "" {
		return nil, errors.New("firestore project id must not be empty")
	}

	database := cfg.Database
	if database == "" {
		database = "(default)"
	}
	base := strings.TrimSuffix(cfg.BaseURL, "/")
	if base == "" {
		base = "https://firestore.googleapis.com"
	}

	restyClient := resty.New()
	restyClient.
		SetBaseURL(fmt.Sprintf("%s/v1/projects/%s/databases/%s/documents", base, url.PathEscape(cfg.ProjectID), url.PathEscape(database))).
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)
	if cfg.APIKey != "" {
		restyClient.SetQueryParam("key", cfg.APIKey)
	}
	if cfg.AccessToken != "" {
		restyClient.SetAuthToken(cfg.AccessToken)
	}

	return &FirestoreRepository{
		httpClient: restyClient,
		pageSize:   defaultPageSize,
		logger:     logger,
	}, nil
}

type document struct {
	Name       string           `json:"name,omitempty"`
	Fields     map[string]value `json:"fields,omitempty"`
	CreateTime string           `json:"createTime,omitempty"`
	UpdateTime string           `json:"updateTime,omitempty"`
}

type listResponse struct {
	Documents     []document `json:"documents"`
	NextPageToken string     `json:"nextPageToken"`
}

type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// List pages through the collection and orders documents by creation time.
func (r *FirestoreRepository) List(ctx context.Context, collection string) ([]models.Document, error) {
	var raw []document
	pageToken := ""
	for {
		page := new(listResponse)
		req := r.httpClient.R().
			SetContext(ctx).
			SetQueryParam("pageSize", strconv.Itoa(r.pageSize)).
			SetResult(page).
			SetError(new(apiError))
		if pageToken != "" {
			req.SetQueryParam("pageToken", pageToken)
		}

		resp, err := req.Get(url.PathEscape(collection))
		if err := checkResponse(resp, err, "list "+collection); err != nil {
			return nil, err
		}

		raw = append(raw, page.Documents...)
		if page.NextPageToken == "" {
			break
		}
		pageToken = page.NextPageToken
	}

	sort.SliceStable(raw, func(i, j int) bool {
		return parseTimestamp(raw[i].CreateTime).Before(parseTimestamp(raw[j].CreateTime))
	})

	docs := make([]models.Document, 0, len(raw))
	for _, d := range raw {
		docs = append(docs, models.Document{ID: documentID(d.Name), Attributes: decodeFields(d.Fields)})
	}

	r.logger.Debug("listed firestore collection", zap.String("collection", collection), zap.Int("documents", len(docs)))
	return docs, nil
}

// Create adds a document and lets Firestore assign its id.
func (r *FirestoreRepository) Create(ctx context.Context, collection string, attrs models.Attributes) (string, error) {
	created := new(document)
	resp, err := r.httpClient.R().
		SetContext(ctx).
		SetBody(document{Fields: encodeFields(attrs)}).
		SetResult(created).
		SetError(new(apiError)).
		Post(url.PathEscape(collection))
	if err := checkResponse(resp, err, "create in "+collection); err != nil {
		return "", err
	}

	id := documentID(created.Name)
	if id == "" {
		return "", fmt.Errorf("firestore create in %s: response carries no document name", collection)
	}
	return id, nil
}

// Update patches the listed fields of an existing document only.
func (r *FirestoreRepository) Update(ctx context.Context, collection, id string, attrs models.Attributes) error {
	params := url.Values{}
	for key := range attrs {
		params.Add("updateMask.fieldPaths", fieldPath(key))
	}
	params.Set("currentDocument.exists", "true")

	resp, err := r.httpClient.R().
		SetContext(ctx).
		SetQueryParamsFromValues(params).
		SetBody(document{Fields: encodeFields(attrs)}).
		SetError(new(apiError)).
		Patch(url.PathEscape(collection) + "/" + url.PathEscape(id))
	return checkResponse(resp, err, "update "+collection+"/"+id)
}

// Delete removes a document. Firestore treats unknown ids as already deleted.
func (r *FirestoreRepository) Delete(ctx context.Context, collection, id string) error {
	resp, err := r.httpClient.R().
		SetContext(ctx).
		SetError(new(apiError)).
		Delete(url.PathEscape(collection) + "/" + url.PathEscape(id))
	err = checkResponse(resp, err, "delete "+collection+"/"+id)
	if errors.Is(err, records.ErrNotFound) {
		return nil
	}
	return err
}

func checkResponse(resp *resty.Response, err error, op string) error {
	if err != nil {
		return fmt.Errorf("firestore %s: %w", op, err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return fmt.Errorf("firestore %s: %w", op, records.ErrNotFound)
	}
	if resp.IsError() {
		message := resp.Status()
		if apiErr, ok := resp.Error().(*apiError); ok && apiErr.Error.Message != "" {
			message = apiErr.Error.Message
		}
		return fmt.Errorf("firestore %s: code=%d, message=%s", op, resp.StatusCode(), message)
	}
	return nil
}

func documentID(name string) string {
	if i := strings.LastIndex(name, "/"); i >= 0 {
		return name[i+1:]
	}
	return name
}

func parseTimestamp(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

var simpleFieldName = regexp.MustCompile(`^[A-Za-z_][A-Za-z_0-9]*$`)

// fieldPath quotes keys that are not plain identifiers.
func fieldPath(key string) string {
	if simpleFieldName.MatchString(key) {
		return key
	}
	return "`" + strings.ReplaceAll(strings.ReplaceAll(key, `\`, `\\`), "`", "\\`") + "`"
}

// value mirrors the Firestore REST Value union; exactly one member is set.
type value struct {
	NullValue      json.RawMessage `json:"nullValue,omitempty"`
	BooleanValue   *bool           `json:"booleanValue,omitempty"`
	IntegerValue   *string         `json:"integerValue,omitempty"`
	DoubleValue    *float64        `json:"doubleValue,omitempty"`
	TimestampValue *string         `json:"timestampValue,omitempty"`
	StringValue    *string         `json:"stringValue,omitempty"`
	MapValue       *mapValue       `json:"mapValue,omitempty"`
	ArrayValue     *arrayValue     `json:"arrayValue,omitempty"`
}

type mapValue struct {
	Fields map[string]value `json:"fields,omitempty"`
}

type arrayValue struct {
	Values []value `json:"values,omitempty"`
}

func encodeFields(attrs map[string]interface{}) map[string]value {
	fields := make(map[string]value, len(attrs))
	for k, v := range attrs {
		fields[k] = encodeValue(v)
	}
	return fields
}

func encodeValue(v interface{}) value {
	switch t := v.(type) {
	case nil:
		return value{NullValue: json.RawMessage("null")}
	case string:
		return value{StringValue: &t}
	case models.Numeric:
		s := string(t)
		return value{StringValue: &s}
	case bool:
		return value{BooleanValue: &t}
	case int:
		s := strconv.Itoa(t)
		return value{IntegerValue: &s}
	case int32:
		s := strconv.FormatInt(int64(t), 10)
		return value{IntegerValue: &s}
	case int64:
		s := strconv.FormatInt(t, 10)
		return value{IntegerValue: &s}
	case float32:
		f := float64(t)
		return value{DoubleValue: &f}
	case float64:
		return value{DoubleValue: &t}
	case json.Number:
		if _, err := t.Int64(); err == nil {
			s := t.String()
			return value{IntegerValue: &s}
		}
		f, _ := t.Float64()
		return value{DoubleValue: &f}
	case time.Time:
		s := t.UTC().Format(time.RFC3339Nano)
		return value{TimestampValue: &s}
	case models.Attributes:
		return value{MapValue: &mapValue{Fields: encodeFields(t)}}
	case map[string]interface{}:
		return value{MapValue: &mapValue{Fields: encodeFields(t)}}
	case []interface{}:
		values := make([]value, 0, len(t))
		for _, item := range t {
			values = append(values, encodeValue(item))
		}
		return value{ArrayValue: &arrayValue{Values: values}}
	default:
		s := fmt.Sprint(t)
		return value{StringValue: &s}
	}
}

func decodeFields(fields map[string]value) models.Attributes {
	attrs := make(models.Attributes, len(fields))
	for k, v := range fields {
		attrs[k] = decodeValue(v)
	}
	return attrs
}

func decodeValue(v value) interface{} {
	switch {
	case v.StringValue != nil:
		return *v.StringValue
	case v.IntegerValue != nil:
		n, err := strconv.ParseInt(*v.IntegerValue, 10, 64)
		if err != nil {
			return *v.IntegerValue
		}
		return n
	case v.DoubleValue != nil:
		return *v.DoubleValue
	case v.BooleanValue != nil:
		return *v.BooleanValue
	case v.TimestampValue != nil:
		return *v.TimestampValue
	case v.MapValue != nil:
		return decodeFields(v.MapValue.Fields)
	case v.ArrayValue != nil:
		items := make([]interface{}, 0, len(v.ArrayValue.Values))
		for _, item := range v.ArrayValue.Values {
			items = append(items, decodeValue(item))
		}
		return items
	default:
		return nil
	}
}
