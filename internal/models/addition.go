package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
)

// ErrSumOutOfRange is returned when a sum cannot be represented as a JSON number
var ErrSumOutOfRange = errors.New("sum is out of range")

// Operand is a number taken verbatim from the event. Only JSON number
// literals decode into it; strings, null, booleans and containers are rejected.
type Operand string

// UnmarshalJSON implements json.Unmarshaler
func (o *Operand) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		return &json.UnmarshalTypeError{Value: "null", Type: operandType}
	}
	if len(trimmed) > 0 && trimmed[0] == '"' {
		return &json.UnmarshalTypeError{Value: "string", Type: operandType}
	}

	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return err
	}
	*o = Operand(n)
	return nil
}

// String returns the literal text of the number
func (o Operand) String() string {
	return string(o)
}

var operandType = reflect.TypeOf(Operand(""))

// AdditionRequest is the AddTwoNumbers event. Absent numbers count as zero.
type AdditionRequest struct {
	Number1 Operand `json:"number1,omitempty"`
	Number2 Operand `json:"number2,omitempty"`
}

// AdditionBody holds the computed sum
type AdditionBody struct {
	Result json.Number `json:"result"`
}

// AdditionResponse is returned by AddTwoNumbers
type AdditionResponse struct {
	StatusCode int          `json:"statusCode"`
	Body       AdditionBody `json:"body"`
}

// NewAdditionResponse wraps a result in a 200 response
func NewAdditionResponse(result json.Number) AdditionResponse {
	return AdditionResponse{
		StatusCode: StatusOK,
		Body:       AdditionBody{Result: result},
	}
}

// Sum adds the two numbers. Two integers are added exactly as int64;
// anything else, or an integer sum that would overflow, is added as float64.
func (r *AdditionRequest) Sum() (json.Number, error) {
	a := orZero(r.Number1)
	b := orZero(r.Number2)

	ai, errA := a.Int64()
	bi, errB := b.Int64()
	if errA == nil && errB == nil {
		sum := ai + bi
		if (sum > ai) == (bi > 0) {
			return json.Number(strconv.FormatInt(sum, 10)), nil
		}
	}

	af, err := parseFloat(a)
	if err != nil {
		return "", err
	}
	bf, err := parseFloat(b)
	if err != nil {
		return "", err
	}

	sum := af + bf
	if math.IsInf(sum, 0) || math.IsNaN(sum) {
		return "", fmt.Errorf("%w: %s + %s", ErrSumOutOfRange, a, b)
	}

	return json.Number(strconv.FormatFloat(sum, 'g', -1, 64)), nil
}

func orZero(n Operand) json.Number {
	if n == "" {
		return "0"
	}
	return json.Number(n)
}

func parseFloat(n json.Number) (float64, error) {
	f, err := n.Float64()
	if errors.Is(err, strconv.ErrRange) {
		return 0, fmt.Errorf("%w: %w", ErrSumOutOfRange, err)
	}
	return f, err
}
