package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func Test_Send(t *testing.T) {
	t.Log("Given the need to submit a transaction from the command line.")
	{
		var got map[string]any

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost || r.URL.Path != "/v1/tx/submit" {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			json.NewDecoder(r.Body).Decode(&got)
			w.Write([]byte(`{"note":"Transaction will be added in block 2.","blockIndex":2}`))
		}))
		defer srv.Close()

		var out bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetArgs([]string{"send", "--url", srv.URL, "--amount", "100", "--from", "ALEX", "--to", "JEN"})

		if err := rootCmd.Execute(); err != nil {
			t.Fatalf("\t%s\tShould be able to run the send command: %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to run the send command.", success)

		if got["amount"] != float64(100) || got["sender"] != "ALEX" || got["recipient"] != "JEN" {
			t.Fatalf("\t%s\tShould send the transaction fields: %v", failed, got)
		}
		t.Logf("\t%s\tShould send the transaction fields.", success)

		if !strings.Contains(out.String(), `"blockIndex": 2`) {
			t.Fatalf("\t%s\tShould print the indented response: %s", failed, out.String())
		}
		t.Logf("\t%s\tShould print the indented response.", success)
	}
}

func Test_NotFound(t *testing.T) {
	t.Log("Given the need to report a lookup miss from the command line.")
	{
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error":"block \"abc\" not found"}`))
		}))
		defer srv.Close()

		var out bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetErr(&out)
		rootCmd.SetArgs([]string{"block", "abc", "--url", srv.URL})

		err := rootCmd.Execute()
		if err == nil || !strings.Contains(err.Error(), "status 404") {
			t.Fatalf("\t%s\tShould return the 404 as an error: %v", failed, err)
		}
		t.Logf("\t%s\tShould return the 404 as an error.", success)
	}
}
