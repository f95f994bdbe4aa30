package dtos

import (
	"time"

	"varanno/api/models"
	"varanno/api/models/constants"

	"github.com/google/uuid"
)

type VariantsResponseDTO struct {
	Status    int                     `json:"status"`
	Message   string                  `json:"message"`
	SessionId uuid.UUID               `json:"sessionId"`
	Count     int                     `json:"count"`
	Results   []*models.VariantRecord `json:"results"`
}

// -- chart data
type CountBucket struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

type PositionPoint struct {
	Chromosome           string `json:"chromosome"`
	Position             int    `json:"position"`
	Rsid                 string `json:"rsid"`
	Gene                 string `json:"gene"`
	ClinicalSignificance string `json:"clinicalSignificance"`
}

type OverviewDTO struct {
	SessionId      uuid.UUID       `json:"sessionId"`
	VariantCount   int             `json:"variantCount"`
	AnnotatedCount int             `json:"annotatedCount"`
	Chromosomes    []CountBucket   `json:"chromosomes"`
	Sources        []CountBucket   `json:"sources"`
	Significances  []CountBucket   `json:"significances"`
	Positions      []PositionPoint `json:"positions"`
}

// -- elasticsearch publication
type PublishResponseDTO struct {
	SessionId   uuid.UUID `json:"sessionId"`
	Index       string    `json:"index"`
	NumIndexed  uint64    `json:"numIndexed"`
	NumFailed   uint64    `json:"numFailed"`
	PublishedAt time.Time `json:"publishedAt"`
}

type PublishedVariantsResponseDTO struct {
	SessionId uuid.UUID               `json:"sessionId"`
	Count     int                     `json:"count"`
	Results   []*models.VariantRecord `json:"results"`
}

// -- pipelines
type PipelineStep struct {
	Name      string   `json:"name"`
	Tool      string   `json:"tool"`
	Arguments []string `json:"arguments"`
}

type PipelineDescription struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Accepts     []constants.FileFormat `json:"accepts"`
	Steps       []PipelineStep         `json:"steps"`
}

// -- errors
type GeneralErrorResponseDto struct {
	Code      int            `json:"code"`
	Message   string         `json:"message"`
	Timestamp time.Time      `json:"timestamp"`
	Errors    []GeneralError `json:"errors"`
}

type GeneralError struct {
	Message string `json:"message"`
}
