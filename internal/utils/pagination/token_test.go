package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeCursor(t *testing.T) {
	// Test case 1: Standard date/time values
	createdAt := time.Date(2023, 5, 15, 14, 30, 45, 123456789, time.UTC)
	caseID := "3fa85f64-5717-4562-b3fc-2c963f66afa6"

	token := EncodeCursor(createdAt, caseID)
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedCreatedAt, decodedCaseID, err := DecodeCursor(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, createdAt, decodedCreatedAt, "Created at time should match after decode")
	assert.Equal(t, caseID, decodedCaseID, "Case ID should match after decode")

	// Test case 2: Current time values
	now := time.Now().UTC()
	nowToken := EncodeCursor(now, caseID)
	decodedNow, decodedID, err := DecodeCursor(nowToken)
	assert.NoError(t, err, "Decoding current time should not return an error")

	// Due to potential nanosecond precision issues, use Equal instead of direct comparison
	assert.True(t, now.Equal(decodedNow), "Current time should match after decode")
	assert.Equal(t, caseID, decodedID, "Case ID should match after decode")
}

func TestDecodeCursorError(t *testing.T) {
	// Test invalid base64
	_, _, err := DecodeCursor("this is not base64!")
	assert.Error(t, err, "Should return an error for invalid base64")
	assert.Contains(t, err.Error(), "base64 decode", "Error should mention base64 decoding")

	// Test invalid format (missing separator)
	invalidToken := EncodeMultiFieldToken("2023-05-15T00:00:00Z")
	_, _, err = DecodeCursor(invalidToken)
	assert.Error(t, err, "Should return an error for invalid token format")
	assert.Contains(t, err.Error(), "field count", "Error should mention the field count")

	// Test invalid timestamp
	invalidDateToken := EncodeMultiFieldToken("notadate", "case-1")
	_, _, err = DecodeCursor(invalidDateToken)
	assert.Error(t, err, "Should return an error for invalid timestamp format")
	assert.Contains(t, err.Error(), "created_at parse", "Error should mention timestamp parsing issue")

	// Test empty case ID
	emptyIDToken := EncodeMultiFieldToken(time.Now().UTC().Format(time.RFC3339Nano), "")
	_, _, err = DecodeCursor(emptyIDToken)
	assert.Error(t, err, "Should return an error for an empty case ID")
}

func TestEncodeMultiFieldToken(t *testing.T) {
	// Test with simple fields
	fields := []string{"field1", "field2", "field3"}
	token := EncodeMultiFieldToken(fields...)

	decodedFields, err := DecodeMultiFieldToken(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, fields, decodedFields, "Fields should match after decode")

	// Test with empty fields
	emptyToken := EncodeMultiFieldToken()
	decodedEmpty, err := DecodeMultiFieldToken(emptyToken)
	assert.NoError(t, err, "Decoding should not return an error")
	// When splitting an empty string with strings.Split, we get a slice with one empty string
	assert.Equal(t, []string{""}, decodedEmpty, "Should decode to slice with one empty string")

	// Test fields with timestamps
	timestampStr := time.Now().UTC().Format(time.RFC3339Nano)
	timeToken := EncodeMultiFieldToken("case123", timestampStr)

	decodedTime, err := DecodeMultiFieldToken(timeToken)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, 2, len(decodedTime), "Should have decoded 2 fields")
	assert.Equal(t, "case123", decodedTime[0], "First field should match")
	assert.Equal(t, timestampStr, decodedTime[1], "Timestamp field should match")
}
