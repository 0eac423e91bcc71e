package infra

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/collin-smith/CdkApp/internal/models"
)

const (
	// Runtime and Handler describe a custom-runtime Go binary named bootstrap
	Runtime = "provided.al2023"
	Handler = "bootstrap"

	RemovalDestroy = "destroy"

	GrantBucketReadWrite = "bucket:read-write"
	GrantTableFullAccess = "table:full-access"

	apiName        = "cdkAPI"
	apiDescription = "This our CDKAPI"

	// bucket names must be unique per region, so a numeric suffix is appended
	maxBucketSuffix = 100000
)

var (
	ErrMissingEnvironment = errors.New("environment is required")
	ErrMissingRegion      = errors.New("region is required")
)

// Stack declares every resource one environment needs
type Stack struct {
	Environment string      `json:"environment"         yaml:"environment"`
	Region      string      `json:"region"              yaml:"region"`
	Bucket      *Bucket     `json:"bucket"              yaml:"bucket"`
	Table       *Table      `json:"table"               yaml:"table"`
	Functions   []*Function `json:"functions"           yaml:"functions"`
	API         *API        `json:"api"                 yaml:"api"`
	Outputs     []*Output   `json:"outputs,omitempty"   yaml:"outputs,omitempty"`
}

type Bucket struct {
	Name          string `json:"name"                     yaml:"name"`
	RemovalPolicy string `json:"removal-policy,omitempty" yaml:"removal-policy,omitempty"`
}

type Table struct {
	Name          string `json:"name"                     yaml:"name"`
	HashKey       string `json:"hash-key"                 yaml:"hash-key"`
	HashKeyType   string `json:"hash-key-type"            yaml:"hash-key-type"`
	ReadCapacity  int    `json:"read-capacity"            yaml:"read-capacity"`
	WriteCapacity int    `json:"write-capacity"           yaml:"write-capacity"`
	RemovalPolicy string `json:"removal-policy,omitempty" yaml:"removal-policy,omitempty"`
}

// Function is one Lambda. A zero Timeout keeps the platform default.
type Function struct {
	Name       string            `json:"name"              yaml:"name"`
	Entrypoint string            `json:"entrypoint"        yaml:"entrypoint"`
	Runtime    string            `json:"runtime"           yaml:"runtime"`
	Handler    string            `json:"handler"           yaml:"handler"`
	Timeout    int               `json:"timeout,omitempty" yaml:"timeout,omitempty"`
	Env        map[string]string `json:"env,omitempty"     yaml:"env,omitempty"`
	Grants     []string          `json:"grants,omitempty"  yaml:"grants,omitempty"`
}

type API struct {
	Name        string   `json:"name"        yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Stage       string   `json:"stage"       yaml:"stage"`
	Routes      []*Route `json:"routes"      yaml:"routes"`
}

type Route struct {
	Method   string `json:"method"   yaml:"method"`
	Path     string `json:"path"     yaml:"path"`
	Function string `json:"function" yaml:"function"`
}

type Output struct {
	Name  string `json:"name"  yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// Options configures NewStack. A negative BucketSuffix picks a random one.
type Options struct {
	Environment  string
	Region       string
	BucketSuffix int
}

// BucketName returns the lower-cased bucket name for an environment and suffix
func BucketName(environment string, suffix int) string {
	return strings.ToLower(fmt.Sprintf("%s-MyS3Bucket%d", environment, suffix))
}

// NewStack builds the declaration for one environment
func NewStack(opts Options) (*Stack, error) {
	if opts.Environment == "" {
		return nil, ErrMissingEnvironment
	}
	if opts.Region == "" {
		return nil, ErrMissingRegion
	}

	suffix := opts.BucketSuffix
	if suffix < 0 {
		suffix = rand.Intn(maxBucketSuffix)
	}

	bucket := &Bucket{
		Name:          BucketName(opts.Environment, suffix),
		RemovalPolicy: RemovalDestroy,
	}
	table := &Table{
		Name:          models.UserTable(opts.Environment),
		HashKey:       "email",
		HashKeyType:   "STRING",
		ReadCapacity:  1,
		WriteCapacity: 1,
		RemovalPolicy: RemovalDestroy,
	}

	functions := []*Function{
		newFunction("simpleLambda", "simple", 0,
			map[string]string{"ENVIRONMENT": opts.Environment, "BUCKET": bucket.Name},
			GrantBucketReadWrite),
		newFunction("s3Lambda", "s3", 20,
			map[string]string{"ENVIRONMENT": opts.Environment, "BUCKET": bucket.Name, "REGION": opts.Region},
			GrantBucketReadWrite),
		newFunction("writeDynamoDB", "writedynamodb", 20,
			map[string]string{"ENVIRONMENT": opts.Environment, "TABLE": table.Name},
			GrantTableFullAccess),
		newFunction("readDynamoDBLambda", "readdynamodb", 20,
			map[string]string{"ENVIRONMENT": opts.Environment, "BUCKET": bucket.Name, "TABLE": table.Name},
			GrantTableFullAccess, GrantBucketReadWrite),
	}

	api := &API{
		Name:        apiName,
		Description: apiDescription,
		Stage:       opts.Environment,
	}
	for _, fn := range functions {
		api.Routes = append(api.Routes, &Route{
			Method:   "POST",
			Path:     "/" + strings.TrimPrefix(fn.Entrypoint, "cmd/lambda/"),
			Function: fn.Name,
		})
	}

	return &Stack{
		Environment: opts.Environment,
		Region:      opts.Region,
		Bucket:      bucket,
		Table:       table,
		Functions:   functions,
		API:         api,
	}, nil
}

func newFunction(name, cmd string, timeout int, env map[string]string, grants ...string) *Function {
	return &Function{
		Name:       name,
		Entrypoint: "cmd/lambda/" + cmd,
		Runtime:    Runtime,
		Handler:    Handler,
		Timeout:    timeout,
		Env:        env,
		Grants:     grants,
	}
}

// Function returns the named function or nil
func (s *Stack) Function(name string) *Function {
	for _, fn := range s.Functions {
		if fn.Name == name {
			return fn
		}
	}
	return nil
}

// Validate checks that the declaration is internally consistent
func (s *Stack) Validate() error {
	if s.Environment == "" {
		return ErrMissingEnvironment
	}
	if s.Region == "" {
		return ErrMissingRegion
	}
	if s.Bucket == nil || s.Bucket.Name == "" {
		return fmt.Errorf("bucket name is required")
	}
	if s.Bucket.Name != strings.ToLower(s.Bucket.Name) {
		return fmt.Errorf("bucket name must be lower case: %s", s.Bucket.Name)
	}
	if s.Table == nil || s.Table.Name == "" || s.Table.HashKey == "" {
		return fmt.Errorf("table name and hash key are required")
	}
	if s.API == nil {
		return fmt.Errorf("api is required")
	}
	if s.API.Stage != s.Environment {
		return fmt.Errorf("api stage %q must match environment %q", s.API.Stage, s.Environment)
	}

	seen := make(map[string]bool, len(s.Functions))
	for _, fn := range s.Functions {
		if fn.Name == "" || fn.Entrypoint == "" {
			return fmt.Errorf("function name and entrypoint are required")
		}
		if seen[fn.Name] {
			return fmt.Errorf("duplicate function: %s", fn.Name)
		}
		seen[fn.Name] = true
		for _, grant := range fn.Grants {
			if grant != GrantBucketReadWrite && grant != GrantTableFullAccess {
				return fmt.Errorf("function %s: unknown grant %q", fn.Name, grant)
			}
		}
	}

	paths := make(map[string]bool, len(s.API.Routes))
	for _, route := range s.API.Routes {
		if !seen[route.Function] {
			return fmt.Errorf("route %s %s: unknown function %s", route.Method, route.Path, route.Function)
		}
		if paths[route.Path] {
			return fmt.Errorf("duplicate route: %s", route.Path)
		}
		paths[route.Path] = true
	}
	return nil
}

// APIURL returns the invoke URL API Gateway assigns to a REST API stage
func (s *Stack) APIURL(restAPIID string) string {
	return fmt.Sprintf("https://%s.execute-api.%s.amazonaws.com/%s/", restAPIID, s.Region, s.API.Stage)
}

// ResolveOutputs returns the lettered deployment outputs for a deployed API URL
func (s *Stack) ResolveOutputs(apiURL string) []*Output {
	outputs := []*Output{
		{Name: "A Region", Value: s.Region},
		{Name: "B S3 Bucket", Value: s.Bucket.Name},
		{Name: "C DynamoDBTable", Value: s.Table.Name},
		{Name: "D API Gateway API", Value: apiURL},
	}

	prefix := strings.TrimSuffix(apiURL, "/")
	labels := map[string]string{
		"/simple":        "E Simple Lambda",
		"/s3":            "F S3 Lambda",
		"/writedynamodb": "G Write DynamoDB Lambda",
		"/readdynamodb":  "H Read DynamoDB Lambda",
	}
	for _, route := range s.API.Routes {
		name, ok := labels[route.Path]
		if !ok {
			name = route.Function
		}
		outputs = append(outputs, &Output{Name: name, Value: prefix + route.Path})
	}
	return outputs
}

// Render encodes the stack as YAML
func Render(s *Stack) ([]byte, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to render stack: %w", err)
	}
	return data, nil
}

// Parse decodes and validates a YAML stack
func Parse(data []byte) (*Stack, error) {
	var s Stack
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse stack: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid stack: %w", err)
	}
	return &s, nil
}

// Load reads a YAML stack from a file
func Load(path string) (*Stack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Parse(data)
}
