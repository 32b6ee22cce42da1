package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"time"

	"github.com/google/uuid"
	"gitlab.com/dirk.krummacker/contact-management/pkg/model"
)

const serverPort = 8080

// Usage example on the command line:
// > go run main.go
func main() {
	token := registerAndLogin()

	fmt.Println()
	fmt.Println("  Elements      POST       PUT       GET    DELETE ")
	fmt.Println("---------------------------------------------------")
	sizes := []int{1000, 5000, 10000, 50000, 100000}
	jsonBody := []byte(`{
		"firstName": "Marcus",
		"lastName": "Antonius",
		"email": "marcus@antonius.it",
		"phone": "+39 999 777 555"
	}`)
	for _, loops := range sizes {
		firstID, _ := sendPostRequest(token, bytes.NewReader(jsonBody))
		fmt.Printf("%10d", loops)
		{
			// POST requests
			var duration int64
			for i := 0; i < loops; i++ {
				_, d := sendPostRequest(token, bytes.NewReader(jsonBody))
				duration += d
			}
			fmt.Printf("%10d", duration/int64(loops*1000))
		}
		{
			// PUT requests
			f := func(id int64) int64 {
				return sendPutGetDeleteRequest(token, id, http.MethodPut, bytes.NewReader(jsonBody))
			}
			callInLoop(firstID, loops, f)
		}
		{
			// GET requests
			f := func(id int64) int64 {
				return sendPutGetDeleteRequest(token, id, http.MethodGet, nil)
			}
			callInLoop(firstID, loops, f)
		}
		{
			// DELETE requests
			f := func(id int64) int64 {
				return sendPutGetDeleteRequest(token, id, http.MethodDelete, nil)
			}
			callInLoop(firstID, loops, f)
		}
		sendPutGetDeleteRequest(token, firstID, http.MethodDelete, nil)
		fmt.Println()
	}
}

// registerAndLogin creates a throwaway user and returns its session token.
func registerAndLogin() string {
	credentials, _ := json.Marshal(map[string]string{
		"username": "load-" + uuid.New().String()[:8],
		"password": "load-test-secret",
		"name":     "Load Test",
	})
	sendRequest(http.MethodPost, url("/api/users"), "", bytes.NewReader(credentials))
	resBody, _ := sendRequest(http.MethodPost, url("/api/users/login"), "", bytes.NewReader(credentials))
	var res model.Response[model.Token]
	if err := json.Unmarshal(resBody, &res); err != nil || res.Data.Token == "" {
		fmt.Println("could not log in", string(resBody))
		panic(err)
	}
	return res.Data.Token
}

func callInLoop(firstID int64, loops int, f func(id int64) int64) {
	ids := createRandomSliceWithIDs(firstID+1, loops)
	var duration int64
	for _, id := range ids {
		d := f(id)
		duration += d
	}
	fmt.Printf("%10d", duration/int64(loops*1000))
}

func createRandomSliceWithIDs(firstID int64, loops int) []int64 {
	ids := make([]int64, 0, loops)
	for i := 0; i < loops; i++ {
		ids = append(ids, firstID+int64(i))
	}
	rand.Shuffle(len(ids), func(i, j int) {
		ids[i], ids[j] = ids[j], ids[i]
	})
	return ids
}

func url(path string) string {
	return fmt.Sprintf("http://localhost:%d%s", serverPort, path)
}

func sendPostRequest(token string, bodyReader io.Reader) (int64, int64) {
	resBody, duration := sendRequest(http.MethodPost, url("/api/contacts"), token, bodyReader)
	var res model.Response[model.Contact]
	err := json.Unmarshal(resBody, &res)
	if err != nil {
		fmt.Println("could not unmarshal JSON", err)
		panic(err)
	}
	return res.Data.Id, duration
}

func sendPutGetDeleteRequest(token string, id int64, method string, bodyReader io.Reader) int64 {
	_, duration := sendRequest(method, url(fmt.Sprintf("/api/contacts/%d", id)), token, bodyReader)
	return duration
}

func sendRequest(method string, requestURL string, token string, bodyReader io.Reader) ([]byte, int64) {
	req, err := http.NewRequest(method, requestURL, bodyReader)
	if err != nil {
		fmt.Println("could not create request", err)
		panic(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	before := time.Now().UnixNano()
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Println("error making http request", err)
		panic(err)
	}
	defer res.Body.Close()
	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		fmt.Println("could not read response body", err)
		panic(err)
	}
	after := time.Now().UnixNano()
	return resBody, after - before
}
