package models

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
	"testing"

	"serverless-functions/internal/adapters/storage"
)

func TestAdditionRequestSum(t *testing.T) {
	tests := []struct {
		name string
		req  AdditionRequest
		want json.Number
	}{
		{name: "two integers", req: AdditionRequest{Number1: "10", Number2: "15"}, want: "25"},
		{name: "missing first", req: AdditionRequest{Number2: "7"}, want: "7"},
		{name: "missing second", req: AdditionRequest{Number1: "-3"}, want: "-3"},
		{name: "both missing", req: AdditionRequest{}, want: "0"},
		{name: "negative integers", req: AdditionRequest{Number1: "-10", Number2: "4"}, want: "-6"},
		{name: "floats", req: AdditionRequest{Number1: "1.5", Number2: "2.25"}, want: "3.75"},
		{name: "integer and float", req: AdditionRequest{Number1: "1", Number2: "0.5"}, want: "1.5"},
		{name: "float precision kept", req: AdditionRequest{Number1: "0.1", Number2: "0.2"}, want: "0.30000000000000004"},
		{name: "exponent notation", req: AdditionRequest{Number1: "1e3", Number2: "1"}, want: "1001"},
		{
			name: "large integers stay exact",
			req:  AdditionRequest{Number1: "9007199254740993", Number2: "1"},
			want: "9007199254740994",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.req.Sum()
			if err != nil {
				t.Fatalf("Sum() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Sum() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestAdditionRequestSumOverflowFallsBackToFloat(t *testing.T) {
	req := AdditionRequest{
		Number1: Operand(strconv.FormatInt(math.MaxInt64, 10)),
		Number2: "1",
	}

	got, err := req.Sum()
	if err != nil {
		t.Fatalf("Sum() error = %v", err)
	}

	f, err := got.Float64()
	if err != nil {
		t.Fatalf("result %q is not a number: %v", got, err)
	}
	if f < float64(math.MaxInt64) {
		t.Errorf("Sum() = %s, expected value >= MaxInt64", got)
	}
}

func TestAdditionRequestDecoding(t *testing.T) {
	t.Run("numbers and defaults", func(t *testing.T) {
		var req AdditionRequest
		if err := json.Unmarshal([]byte(`{"number1": 10}`), &req); err != nil {
			t.Fatalf("Unmarshal failed: %v", err)
		}
		got, err := req.Sum()
		if err != nil {
			t.Fatalf("Sum() error = %v", err)
		}
		if got != "10" {
			t.Errorf("Sum() = %s, want 10", got)
		}
	})

	t.Run("non-numeric input fails to decode", func(t *testing.T) {
		payloads := []string{
			`{"number1": "abc"}`,
			`{"number1": true}`,
			`{"number2": [1]}`,
			`{"number2": {"n": 1}}`,
			`{"number1": "12", "number2": 3}`,
			`{"number1": "12", "number2": "3"}`,
			`{"number1": null, "number2": 5}`,
			`{"number2": null}`,
		}
		for _, payload := range payloads {
			var req AdditionRequest
			if err := json.Unmarshal([]byte(payload), &req); err == nil {
				t.Errorf("Unmarshal(%s) should fail, decoded %+v", payload, req)
			}
		}
	})

	t.Run("number literals keep their text", func(t *testing.T) {
		var req AdditionRequest
		if err := json.Unmarshal([]byte(`{"number1": 1.50, "number2": -2e3}`), &req); err != nil {
			t.Fatalf("Unmarshal failed: %v", err)
		}
		if req.Number1 != "1.50" || req.Number2 != "-2e3" {
			t.Errorf("decoded %+v", req)
		}
	})
}

func TestAdditionRequestSumOutOfRange(t *testing.T) {
	tests := []struct {
		name string
		req  AdditionRequest
	}{
		{name: "float sum overflows", req: AdditionRequest{Number1: "1e308", Number2: "1e308"}},
		{name: "negative float sum overflows", req: AdditionRequest{Number1: "-1.7e308", Number2: "-1.7e308"}},
		{name: "operand beyond float64", req: AdditionRequest{Number1: "1e400", Number2: "1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.req.Sum()
			if !errors.Is(err, ErrSumOutOfRange) {
				t.Fatalf("Sum() = %q, %v; want ErrSumOutOfRange", got, err)
			}
		})
	}
}

func TestAdditionResponseAlwaysMarshals(t *testing.T) {
	req := AdditionRequest{Number1: "1.7976931348623157e308", Number2: "-1"}
	sum, err := req.Sum()
	if err != nil {
		t.Fatalf("Sum() error = %v", err)
	}
	if _, err := json.Marshal(NewAdditionResponse(sum)); err != nil {
		t.Errorf("Marshal failed for %q: %v", sum, err)
	}
}

func TestAdditionResponseJSON(t *testing.T) {
	resp := NewAdditionResponse("25")

	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	if string(data) != `{"statusCode":200,"body":{"result":25}}` {
		t.Errorf("unexpected JSON: %s", data)
	}
}

func TestStorageResponses(t *testing.T) {
	t.Run("success carries provider metadata", func(t *testing.T) {
		resp := NewStorageSuccessResponse(&storage.PutObjectResult{Bucket: "b", Key: "k.pdf", ETag: `"e"`})
		if resp.StatusCode != 200 || resp.Body != "File uploaded successfully." {
			t.Errorf("unexpected response: %+v", resp)
		}
		if resp.S3Response == nil || resp.S3Response.ETag != `"e"` {
			t.Errorf("S3Response not set: %+v", resp.S3Response)
		}
	})

	t.Run("validation omits provider metadata", func(t *testing.T) {
		resp := NewStorageValidationResponse()
		data, err := json.Marshal(resp)
		if err != nil {
			t.Fatalf("Marshal failed: %v", err)
		}
		want := `{"statusCode":400,"body":"Missing required parameters: bucket, key, or file_content."}`
		if string(data) != want {
			t.Errorf("got %s, want %s", data, want)
		}
	})

	t.Run("error body carries message", func(t *testing.T) {
		resp := NewStorageErrorResponse(errors.New("boom"))
		if resp.StatusCode != 500 {
			t.Errorf("StatusCode = %d, want 500", resp.StatusCode)
		}
		if resp.Body != "Error uploading file: boom" {
			t.Errorf("Body = %q", resp.Body)
		}
	})
}

func TestUploadErrorUnwrap(t *testing.T) {
	cause := storage.ErrBucketNotFound
	err := &UploadError{Stage: "store", Bucket: "b", Key: "k", Err: cause}

	if !errors.Is(err, storage.ErrBucketNotFound) {
		t.Error("UploadError should unwrap to its cause")
	}
	if err.Error() != cause.Error() {
		t.Errorf("Error() = %q, want %q", err.Error(), cause.Error())
	}
}

func TestParseStorageEvent(t *testing.T) {
	t.Run("valid event", func(t *testing.T) {
		req, err := ParseStorageEvent([]byte(`{"bucket":"b","key":"k.pdf","file_content":"JVBERg==","extra":1}`))
		if err != nil {
			t.Fatalf("ParseStorageEvent() error = %v", err)
		}
		want := StorageRequest{Bucket: "b", Key: "k.pdf", FileContent: "JVBERg=="}
		if req != want {
			t.Errorf("ParseStorageEvent() = %+v, want %+v", req, want)
		}
	})

	missing := []struct {
		name  string
		event string
		field string
	}{
		{name: "empty body", event: ``, field: "bucket,key,file_content"},
		{name: "empty object", event: `{}`, field: "bucket,key,file_content"},
		{name: "null bucket", event: `{"bucket":null,"key":"k","file_content":"eA=="}`, field: "bucket"},
		{name: "empty key", event: `{"bucket":"b","key":"","file_content":"eA=="}`, field: "key"},
		{name: "zero bucket", event: `{"bucket":0,"key":"k","file_content":"eA=="}`, field: "bucket"},
		{name: "false key", event: `{"bucket":"b","key":false,"file_content":"eA=="}`, field: "key"},
		{name: "empty list content", event: `{"bucket":"b","key":"k","file_content":[]}`, field: "file_content"},
		{name: "empty object content", event: `{"bucket":"b","key":"k","file_content":{}}`, field: "file_content"},
		{name: "missing wins over bad type", event: `{"bucket":123,"key":""}`, field: "key,file_content"},
	}
	for _, tt := range missing {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseStorageEvent([]byte(tt.event))
			var validationErr *ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("ParseStorageEvent() error = %v, want *ValidationError", err)
			}
			if validationErr.Field != tt.field {
				t.Errorf("Field = %q, want %q", validationErr.Field, tt.field)
			}
			if validationErr.Message != MissingParametersMessage {
				t.Errorf("Message = %q", validationErr.Message)
			}
		})
	}

	badType := []struct {
		name  string
		event string
		want  string
	}{
		{name: "numeric bucket", event: `{"bucket":123,"key":"k","file_content":"eA=="}`, want: "invalid type for parameter bucket, value: 123"},
		{name: "boolean key", event: `{"bucket":"b","key":true,"file_content":"eA=="}`, want: "invalid type for parameter key, value: true"},
		{name: "list content", event: `{"bucket":"b","key":"k","file_content":["eA=="]}`, want: "invalid type for parameter file_content"},
	}
	for _, tt := range badType {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseStorageEvent([]byte(tt.event))
			var uploadErr *UploadError
			if !errors.As(err, &uploadErr) {
				t.Fatalf("ParseStorageEvent() error = %v, want *UploadError", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to contain %q", err.Error(), tt.want)
			}
		})
	}

	t.Run("not an object", func(t *testing.T) {
		for _, event := range []string{`[1]`, `"text"`, `{`} {
			_, err := ParseStorageEvent([]byte(event))
			if err == nil {
				t.Errorf("ParseStorageEvent(%s) should fail", event)
				continue
			}
			var validationErr *ValidationError
			var uploadErr *UploadError
			if errors.As(err, &validationErr) || errors.As(err, &uploadErr) {
				t.Errorf("ParseStorageEvent(%s) error = %T, want a plain decode error", event, err)
			}
		}
	})
}
