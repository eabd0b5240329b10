package echoapi_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	echoapi "github.com/syllabio/backend/apps/api/echo"
	"github.com/syllabio/backend/core"
	"github.com/syllabio/backend/core/coverage"
	logsvc "github.com/syllabio/backend/services/logger"
	inmemdb "github.com/syllabio/backend/storage/database/inmem"
)

const testAdminPassword = "s3cr3t-pwd"

var errMissingToken = httpErr{Error: "authentication required"}

func newTestConfig(t *testing.T) *core.Config {
	hash, err := bcrypt.GenerateFromPassword([]byte(testAdminPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("newTestConfig() failed: %v", err)
	}
	return &core.Config{
		TestMode:  true,
		AppName:   "Syllabio",
		SecretKey: "test-secret",
		Server:    core.ServerConfig{JWTExpirationDelta: time.Hour},
		Admin:     core.AdminConfig{PasswordHash: string(hash)},
	}
}

func setup(t *testing.T) (*echoapi.Server, *coverage.Service, *core.Config) {
	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	svc := coverage.NewService(coverage.NewTestIndex(), inmemdb.NewCoverageRepository(db))

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)

	conf := newTestConfig(t)
	server := echoapi.NewServer(echoapi.ServerDeps{
		Conf:        conf,
		Logger:      logsvc.NewConsoleLogger(log.New(io.Discard, "", 0)),
		CoverageSvc: svc,
		Validate:    validate,
		Translator:  translator,
	})
	return server, svc, conf
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getToken(t *testing.T, conf *core.Config) string {
	token, err := echoapi.GenerateToken(echoapi.NewAdminClaims(conf), conf)
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func marshallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshallObj() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
