//go:build integration

package integrationtest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcmysql "github.com/testcontainers/testcontainers-go/modules/mysql"
	"gitlab.com/dirk.krummacker/contact-management/internal/api"
	"gitlab.com/dirk.krummacker/contact-management/internal/migrations"
	"gitlab.com/dirk.krummacker/contact-management/internal/store"
)

// router is the contact management on a migrated MySQL container, shared by all tests.
var router *gin.Engine

func TestMain(m *testing.M) {
	os.Exit(run(m))
}

func run(m *testing.M) int {
	ctx := context.Background()
	container, err := tcmysql.Run(ctx, "mysql:8.0.36",
		tcmysql.WithDatabase("contacts"),
		tcmysql.WithUsername("dirk"),
		tcmysql.WithPassword("bullo92"),
	)
	if err != nil {
		fmt.Println("failed to start mysql container:", err)
		return 1
	}
	defer func() { _ = container.Terminate(ctx) }()

	dsn, err := container.ConnectionString(ctx, "parseTime=true", "clientFoundRows=true")
	if err != nil {
		fmt.Println("failed to get mysql connection string:", err)
		return 1
	}
	sqlDB, err := store.Open(dsn)
	if err != nil {
		fmt.Println("failed to open database:", err)
		return 1
	}
	if err := migrations.Up(ctx, sqlDB); err != nil {
		fmt.Println("failed to migrate database:", err)
		return 1
	}
	st, err := store.New(sqlDB)
	if err != nil {
		fmt.Println("failed to prepare statements:", err)
		return 1
	}
	defer st.Close()

	gin.SetMode(gin.TestMode)
	router = api.SetupHttpRouter(st, api.Options{})
	return m.Run()
}

// call executes a request against the router and decodes the JSON response into a map.
func call(t *testing.T, method string, url string, token string, body string) (int, map[string]any) {
	t.Helper()
	recorder := httptest.NewRecorder()
	request, _ := http.NewRequest(method, url, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	if token != "" {
		request.Header.Set("Authorization", token)
	}
	router.ServeHTTP(recorder, request)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &decoded), recorder.Body.String())
	return recorder.Code, decoded
}

// login registers a user with the given name and returns its token.
func login(t *testing.T, username string) string {
	t.Helper()
	credentials := fmt.Sprintf(`{"username": %q, "password": "secret", "name": %q}`, username, username)
	status, _ := call(t, "POST", "/api/users", "", credentials)
	require.Equal(t, http.StatusOK, status)
	status, body := call(t, "POST", "/api/users/login", "", credentials)
	require.Equal(t, http.StatusOK, status)
	return body["data"].(map[string]any)["token"].(string)
}

// createContact creates a contact and returns its id.
func createContact(t *testing.T, token string, firstName string) string {
	t.Helper()
	status, body := call(t, "POST", "/api/contacts", token, fmt.Sprintf(`{"firstName": %q}`, firstName))
	require.Equal(t, http.StatusOK, status)
	return fmt.Sprintf("%.0f", body["data"].(map[string]any)["id"])
}

// TestRegistration registers a user twice. It expects that the second registration fails.
func TestRegistration(t *testing.T) {
	credentials := `{"username": "samantha", "password": "secret", "name": "samantha harris"}`
	status, body := call(t, "POST", "/api/users", "", credentials)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, map[string]any{"username": "samantha", "name": "samantha harris"}, body["data"])

	status, body = call(t, "POST", "/api/users", "", credentials)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "username is already registered", body["errors"])
}

// TestLoginFailures expects the same answer for a wrong password and an unknown username.
func TestLoginFailures(t *testing.T) {
	login(t, "lucia")
	wrongStatus, wrongBody := call(t, "POST", "/api/users/login", "", `{"username": "lucia", "password": "wrong"}`)
	unknownStatus, unknownBody := call(t, "POST", "/api/users/login", "", `{"username": "nobody", "password": "secret"}`)
	assert.Equal(t, http.StatusUnauthorized, wrongStatus)
	assert.Equal(t, http.StatusUnauthorized, unknownStatus)
	assert.Equal(t, wrongBody, unknownBody)
}

// TestSession goes through the life of a session.
func TestSession(t *testing.T) {
	token := login(t, "marcus")

	status, body := call(t, "GET", "/api/users/current", token, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, token, body["data"].(map[string]any)["token"])

	status, body = call(t, "PATCH", "/api/users/current", token, `{"name": "Marcus Antonius"}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Marcus Antonius", body["data"].(map[string]any)["name"])

	status, body = call(t, "DELETE", "/api/users/logout", token, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "OK", body["data"])

	status, _ = call(t, "GET", "/api/users/current", token, "")
	assert.Equal(t, http.StatusUnauthorized, status)
}

// TestContactHappyPath tests a POST, GET, PUT, and DELETE with valid data.
func TestContactHappyPath(t *testing.T) {
	token := login(t, "erika")

	status, body := call(t, "POST", "/api/contacts", token, `
		{
			"firstName": "Erika",
			"lastName": "Mustermann",
			"email": "erika@example.com",
			"phone": "+49 0815 4711"
		}
	`)
	require.Equal(t, http.StatusOK, status)
	created := body["data"].(map[string]any)
	id := fmt.Sprintf("%.0f", created["id"])

	status, body = call(t, "GET", "/api/contacts/"+id, token, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, created, body["data"])

	status, body = call(t, "PUT", "/api/contacts/"+id, token, `{"firstName": "Rudi", "lastName": "Völler"}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Rudi", body["data"].(map[string]any)["firstName"])

	status, body = call(t, "GET", "/api/contacts/"+id, token, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Völler", body["data"].(map[string]any)["lastName"])
	assert.Nil(t, body["data"].(map[string]any)["email"])

	status, _ = call(t, "DELETE", "/api/contacts/"+id, token, "")
	assert.Equal(t, http.StatusOK, status)
	status, _ = call(t, "GET", "/api/contacts/"+id, token, "")
	assert.Equal(t, http.StatusNotFound, status)
	status, _ = call(t, "DELETE", "/api/contacts/"+id, token, "")
	assert.Equal(t, http.StatusNotFound, status)
}

// TestSearchPaging creates 15 contacts and pages through them.
func TestSearchPaging(t *testing.T) {
	token := login(t, "paging")
	for i := 1; i <= 15; i++ {
		createContact(t, token, fmt.Sprintf("Contact %d", i))
	}

	status, body := call(t, "GET", "/api/contacts", token, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, body["data"], 10)
	assert.Equal(t, map[string]any{"page": float64(1), "totalItems": float64(15), "totalPages": float64(2)}, body["paging"])

	status, body = call(t, "GET", "/api/contacts?page=2", token, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, body["data"], 5)

	status, body = call(t, "GET", "/api/contacts?name=Contact%201&size=100", token, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, body["data"], 7)
}

// TestOwnership expects that contacts and addresses of another user look like they do not
// exist.
func TestOwnership(t *testing.T) {
	owner := login(t, "owner")
	intruder := login(t, "intruder")
	id := createContact(t, owner, "Secret")

	status, body := call(t, "POST", "/api/contacts/"+id+"/addresses", owner, `{"country": "Germany", "postalCode": "10115"}`)
	require.Equal(t, http.StatusOK, status)
	addressId := fmt.Sprintf("%.0f", body["data"].(map[string]any)["id"])

	for _, r := range []struct{ method, url string }{
		{"GET", "/api/contacts/" + id},
		{"PUT", "/api/contacts/" + id},
		{"DELETE", "/api/contacts/" + id},
		{"GET", "/api/contacts/" + id + "/addresses"},
		{"GET", "/api/contacts/" + id + "/addresses/" + addressId},
		{"DELETE", "/api/contacts/" + id + "/addresses/" + addressId},
	} {
		status, _ := call(t, r.method, r.url, intruder, `{"firstName": "Mallory"}`)
		assert.Equal(t, http.StatusNotFound, status, r.method+" "+r.url)
	}

	status, body = call(t, "GET", "/api/contacts", intruder, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Empty(t, body["data"])

	status, body = call(t, "GET", "/api/contacts/"+id, owner, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Secret", body["data"].(map[string]any)["firstName"])
}

// TestAddresses goes through the life of an address and its removal with the contact.
func TestAddresses(t *testing.T) {
	token := login(t, "addresses")
	id := createContact(t, token, "Erika")

	status, body := call(t, "POST", "/api/contacts/"+id+"/addresses", token, `{"street": "Hauptstraße 1"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body["errors"], "country")
	assert.Contains(t, body["errors"], "postalCode")

	status, body = call(t, "POST", "/api/contacts/"+id+"/addresses", token,
		`{"street": "Hauptstraße 1", "city": "Berlin", "country": "Germany", "postalCode": "10115"}`)
	require.Equal(t, http.StatusOK, status)
	addressId := fmt.Sprintf("%.0f", body["data"].(map[string]any)["id"])

	status, body = call(t, "PUT", "/api/contacts/"+id+"/addresses/"+addressId, token,
		`{"city": "München", "province": "Bayern", "country": "Germany", "postalCode": "80331"}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Bayern", body["data"].(map[string]any)["province"])

	status, body = call(t, "GET", "/api/contacts/"+id+"/addresses", token, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, body["data"], 1)

	// An address is only reachable through its own contact.
	other := createContact(t, token, "Max")
	status, _ = call(t, "GET", "/api/contacts/"+other+"/addresses/"+addressId, token, "")
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = call(t, "DELETE", "/api/contacts/"+id, token, "")
	assert.Equal(t, http.StatusOK, status)
	status, _ = call(t, "GET", "/api/contacts/"+id+"/addresses/"+addressId, token, "")
	assert.Equal(t, http.StatusNotFound, status)
}

// TestErrorEnvelope expects the error envelope for unknown routes and missing tokens.
func TestErrorEnvelope(t *testing.T) {
	status, body := call(t, "GET", "/api/nothing", "", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, map[string]any{"errors": "not found"}, body)

	status, body = call(t, "GET", "/api/contacts", "", "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, map[string]any{"errors": "unauthorized"}, body)
}
