package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

func runChat(apiURL, ownerID, name, taskID, text string, out io.Writer) error {
	profile := map[string]string{"id": ownerID}
	if name != "" {
		profile["name"] = name
	}
	payload := map[string]interface{}{
		"profile": profile,
		"text":    text,
	}
	if taskID != "" {
		payload["task"] = map[string]string{"id": taskID, "title": "Task " + taskID}
	}
	body, _ := json.Marshal(payload)
	resp, err := http.Post(apiURL+"/v0/chat", "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("http %d: %s", resp.StatusCode, string(data))
	}
	var decoded struct {
		Reply struct {
			Content string `json:"content"`
		} `json:"reply"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, decoded.Reply.Content)
	return err
}

func runThreads(apiURL, ownerID string, out io.Writer) error {
	resp, err := http.Get(apiURL + "/v0/owners/" + ownerID + "/threads")
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("http %d: %s", resp.StatusCode, string(data))
	}
	var decoded struct {
		Threads []struct {
			ThreadID     string `json:"threadId"`
			PurposeLabel string `json:"purposeLabel"`
		} `json:"threads"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return err
	}
	for _, t := range decoded.Threads {
		fmt.Fprintf(out, "%s\t%s\n", t.ThreadID, t.PurposeLabel)
	}
	return nil
}

func runHistory(apiURL, threadID string, out io.Writer) error {
	resp, err := http.Get(apiURL + "/v0/threads/" + threadID + "/messages")
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("http %d: %s", resp.StatusCode, string(data))
	}
	var decoded struct {
		Label    string `json:"label"`
		Messages []struct {
			Sender  string `json:"sender"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return err
	}
	fmt.Fprintf(out, "--- %s ---\n", decoded.Label)
	for _, m := range decoded.Messages {
		fmt.Fprintf(out, "%s: %s\n", m.Sender, m.Content)
	}
	return nil
}

func runClear(apiURL, threadID string, out io.Writer) error {
	resp, err := http.Post(apiURL+"/v0/threads/"+threadID+"/clear", "application/json", nil)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusNoContent {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("http %d: %s", resp.StatusCode, string(data))
	}
	fmt.Fprintf(out, "cleared %s\n", threadID)
	return nil
}
