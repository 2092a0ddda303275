package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
)

const (
	pinataPinURL  = "https://api.pinata.cloud/pinning/pinFileToIPFS"
	pinataGateway = "https://gateway.pinata.cloud/ipfs/"
)

// PinataClient pins files (signatures, generated PDFs) to IPFS through the
// Pinata HTTP API.
type PinataClient struct {
	APIKey    string
	APISecret string
	DryRun    bool // skip the HTTP call, return a fake hash
}

type pinataResponse struct {
	IpfsHash string `json:"IpfsHash"`
}

func NewPinataClient(apiKey, apiSecret string, dryRun bool) *PinataClient {
	return &PinataClient{APIKey: apiKey, APISecret: apiSecret, DryRun: dryRun}
}

// PinFile uploads the buffer under fileName and returns the public gateway
// URL of the pinned file.
func (c *PinataClient) PinFile(data []byte, fileName string) (string, error) {
	if c.DryRun || c.APIKey == "" {
		log.Printf("[pinata][dry-run] file=%s size=%d", fileName, len(data))
		return pinataGateway + "dry-run/" + fileName, nil
	}

	var body bytes.Buffer
	form := multipart.NewWriter(&body)

	part, err := form.CreateFormFile("file", fileName)
	if err != nil {
		return "", fmt.Errorf("pinata form: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("pinata form write: %w", err)
	}

	metadata, _ := json.Marshal(map[string]string{"name": fileName})
	_ = form.WriteField("pinataMetadata", string(metadata))
	_ = form.WriteField("pinataOptions", `{"cidVersion":0}`)

	if err := form.Close(); err != nil {
		return "", fmt.Errorf("pinata form close: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, pinataPinURL, &body)
	if err != nil {
		return "", fmt.Errorf("pinata request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set("pinata_api_key", c.APIKey)
	req.Header.Set("pinata_secret_api_key", c.APISecret)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("pinata upload: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("pinata returned %d: %s", resp.StatusCode, string(raw))
	}

	var result pinataResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		return "", fmt.Errorf("pinata parse response: %w", err)
	}
	if result.IpfsHash == "" {
		return "", fmt.Errorf("pinata response missing hash: %s", string(raw))
	}
	return pinataGateway + result.IpfsHash, nil
}
