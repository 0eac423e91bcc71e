package infra

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStack(t *testing.T) *Stack {
	t.Helper()
	s, err := NewStack(Options{Environment: "PRD", Region: "us-east-1", BucketSuffix: 4242})
	require.NoError(t, err)
	return s
}

func TestNewStack(t *testing.T) {
	s := newTestStack(t)

	assert.Equal(t, "prd-mys3bucket4242", s.Bucket.Name)
	assert.Equal(t, RemovalDestroy, s.Bucket.RemovalPolicy)

	assert.Equal(t, "PRD-User", s.Table.Name)
	assert.Equal(t, "email", s.Table.HashKey)
	assert.Equal(t, "STRING", s.Table.HashKeyType)
	assert.Equal(t, 1, s.Table.ReadCapacity)
	assert.Equal(t, 1, s.Table.WriteCapacity)

	require.Len(t, s.Functions, 4)
	assert.NoError(t, s.Validate())

	t.Run("SimpleLambda", func(t *testing.T) {
		fn := s.Function("simpleLambda")
		require.NotNil(t, fn)
		assert.Equal(t, "cmd/lambda/simple", fn.Entrypoint)
		assert.Zero(t, fn.Timeout)
		assert.Equal(t, map[string]string{"ENVIRONMENT": "PRD", "BUCKET": "prd-mys3bucket4242"}, fn.Env)
		assert.Equal(t, []string{GrantBucketReadWrite}, fn.Grants)
	})

	t.Run("S3Lambda", func(t *testing.T) {
		fn := s.Function("s3Lambda")
		require.NotNil(t, fn)
		assert.Equal(t, 20, fn.Timeout)
		assert.Equal(t, "us-east-1", fn.Env["REGION"])
		assert.Equal(t, []string{GrantBucketReadWrite}, fn.Grants)
	})

	t.Run("WriteDynamoDB", func(t *testing.T) {
		fn := s.Function("writeDynamoDB")
		require.NotNil(t, fn)
		assert.Equal(t, map[string]string{"ENVIRONMENT": "PRD", "TABLE": "PRD-User"}, fn.Env)
		assert.Equal(t, []string{GrantTableFullAccess}, fn.Grants)
	})

	t.Run("ReadDynamoDB", func(t *testing.T) {
		fn := s.Function("readDynamoDBLambda")
		require.NotNil(t, fn)
		assert.Len(t, fn.Env, 3)
		assert.Equal(t, []string{GrantTableFullAccess, GrantBucketReadWrite}, fn.Grants)
	})

	t.Run("API", func(t *testing.T) {
		assert.Equal(t, "cdkAPI", s.API.Name)
		assert.Equal(t, "PRD", s.API.Stage)
		var paths []string
		for _, r := range s.API.Routes {
			assert.Equal(t, "POST", r.Method)
			paths = append(paths, r.Path)
		}
		assert.Equal(t, []string{"/simple", "/s3", "/writedynamodb", "/readdynamodb"}, paths)
	})
}

func TestNewStackErrors(t *testing.T) {
	_, err := NewStack(Options{Region: "us-east-1"})
	assert.ErrorIs(t, err, ErrMissingEnvironment)

	_, err = NewStack(Options{Environment: "DEV"})
	assert.ErrorIs(t, err, ErrMissingRegion)
}

func TestNewStackRandomSuffix(t *testing.T) {
	s, err := NewStack(Options{Environment: "DEV", Region: "us-east-1", BucketSuffix: -1})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(s.Bucket.Name, "dev-mys3bucket"))
	assert.NoError(t, s.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s *Stack)
		wantErr string
	}{
		{"UpperCaseBucket", func(s *Stack) { s.Bucket.Name = "PRD-Bucket" }, "must be lower case"},
		{"StageMismatch", func(s *Stack) { s.API.Stage = "DEV" }, "must match environment"},
		{"DuplicateFunction", func(s *Stack) { s.Functions[1].Name = "simpleLambda" }, "duplicate function"},
		{"UnknownGrant", func(s *Stack) { s.Functions[0].Grants = []string{"queue:send"} }, "unknown grant"},
		{"UnknownRouteTarget", func(s *Stack) { s.API.Routes[0].Function = "missing" }, "unknown function"},
		{"DuplicateRoute", func(s *Stack) { s.API.Routes[1].Path = "/simple" }, "duplicate route"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStack(t)
			tt.mutate(s)
			err := s.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestResolveOutputs(t *testing.T) {
	s := newTestStack(t)
	apiURL := s.APIURL("abc123")
	assert.Equal(t, "https://abc123.execute-api.us-east-1.amazonaws.com/PRD/", apiURL)

	outputs := s.ResolveOutputs(apiURL)
	require.Len(t, outputs, 8)

	got := make(map[string]string, len(outputs))
	for _, o := range outputs {
		got[o.Name] = o.Value
	}
	assert.Equal(t, map[string]string{
		"A Region":                "us-east-1",
		"B S3 Bucket":             "prd-mys3bucket4242",
		"C DynamoDBTable":         "PRD-User",
		"D API Gateway API":       apiURL,
		"E Simple Lambda":         "https://abc123.execute-api.us-east-1.amazonaws.com/PRD/simple",
		"F S3 Lambda":             "https://abc123.execute-api.us-east-1.amazonaws.com/PRD/s3",
		"G Write DynamoDB Lambda": "https://abc123.execute-api.us-east-1.amazonaws.com/PRD/writedynamodb",
		"H Read DynamoDB Lambda":  "https://abc123.execute-api.us-east-1.amazonaws.com/PRD/readdynamodb",
	}, got)
	assert.Equal(t, "A Region", outputs[0].Name)
	assert.Equal(t, "H Read DynamoDB Lambda", outputs[7].Name)
}

func TestRenderParseRoundTrip(t *testing.T) {
	s := newTestStack(t)

	data, err := Render(s)
	require.NoError(t, err)
	assert.Contains(t, string(data), "removal-policy: destroy")
	assert.Contains(t, string(data), "runtime: provided.al2023")
	assert.NotContains(t, string(data), "outputs:")

	path := filepath.Join(t.TempDir(), "stack.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, s, loaded)
}

func TestParseRejectsInvalid(t *testing.T) {
	_, err := Parse([]byte("environment: PRD\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid stack")

	_, err = Parse([]byte("environment: [unterminated"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse stack")

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
