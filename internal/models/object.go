package models

import "time"

// ObjectMetadata describes one object returned by a container listing.
// JSON keys match the listing payload consumers already parse.
type ObjectMetadata struct {
	Key           string    `json:"key"`
	ContainerName string    `json:"bucketname"`
	Region        string    `json:"region"`
	SizeBytes     int64     `json:"size"`
	LastModified  time.Time `json:"lastmodified"`
}
