// Smoke test against a running taskdeck-api: logs in with a freshly minted
// issuer token, creates a task and reads it back.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"taskdeck.org/internal/auth"
)

type graphqlResponse struct {
	Data   map[string]any `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func main() {
	url := os.Getenv("TASKDECK_API_URL")
	if url == "" {
		url = "http://localhost:8080"
	}
	secret := os.Getenv("TASKDECK_AUTH_SECRET")
	if secret == "" {
		log.Fatal("missing TASKDECK_AUTH_SECRET")
	}

	userID := time.Now().Unix() % 1_000_000
	token, err := auth.GenerateToken([]byte(secret), userID, "user", 5*time.Minute)
	if err != nil {
		log.Fatalf("mint token: %v", err)
	}

	client := &http.Client{Timeout: 5 * time.Second}

	login := do(client, url, token, `mutation login{ login{ id, role } }`, nil)
	user, ok := login.Data["login"].(map[string]any)
	if !ok || user["id"] != float64(userID) {
		log.Fatalf("unexpected login result: %+v", login)
	}

	created := do(client, url, token, `mutation createTask($task: TaskInput!){
		createTask(task: $task){ id, name, state, userId }
	}`, map[string]any{"task": map[string]any{"name": "smoke", "state": "todo"}})
	taskData, ok := created.Data["createTask"].(map[string]any)
	if !ok || taskData["userId"] != float64(userID) {
		log.Fatalf("unexpected createTask result: %+v", created)
	}

	readBack := do(client, url, token, `query taskById($id: Int!){ taskById(id: $id){ id, name } }`,
		map[string]any{"id": taskData["id"]})
	if got, ok := readBack.Data["taskById"].(map[string]any); !ok || got["name"] != "smoke" {
		log.Fatalf("unexpected taskById result: %+v", readBack)
	}

	fmt.Printf("✅ taskdeck smoke test passed: user=%d task=%v\n", userID, taskData["id"])
}

func do(client *http.Client, url, token, query string, vars map[string]any) graphqlResponse {
	body, err := json.Marshal(map[string]any{"query": query, "variables": vars})
	if err != nil {
		log.Fatalf("marshal request: %v", err)
	}
	req, err := http.NewRequest(http.MethodPost, url+"/graphql", bytes.NewReader(body))
	if err != nil {
		log.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := client.Do(req)
	if err != nil {
		log.Fatalf("POST /graphql: %v", err)
	}
	defer resp.Body.Close()

	var out graphqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		log.Fatalf("decode response: %v", err)
	}
	if len(out.Errors) > 0 {
		log.Fatalf("graphql error: %s", out.Errors[0].Message)
	}
	return out
}
