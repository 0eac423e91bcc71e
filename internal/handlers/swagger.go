package handlers

// @title CdkApp API
// @version 1.0
// @description Four serverless functions behind one REST API: an echo, a bucket listing and a user table write and read.
// @description Every call answers 200 with a text/plain JSON document; failures are reported in the success and message fields.

// @host localhost:8081
// @BasePath /

// @tag.name echo
// @tag.description Request echo

// @tag.name s3
// @tag.description Bucket listing

// @tag.name users
// @tag.description User table write and read
