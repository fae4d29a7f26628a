package model

import "time"

type AccountID string

type Plan string

const (
	PlanPrepaid  Plan = "PREPAID"
	PlanPostpaid Plan = "POSTPAID"
)

type DocumentType string

const (
	DocumentCPF  DocumentType = "CPF"
	DocumentCNPJ DocumentType = "CNPJ"
)

type CreateAccountParams struct {
	Name         string       `json:"name"`
	DocumentID   string       `json:"documentId"`
	DocumentType DocumentType `json:"documentType"`
	PlanType     Plan         `json:"planType"`
	Balance      Money        `json:"balance"`
	Limit        Money        `json:"limit"`
	Secret       string       `json:"secret"`
}

type Account struct {
	ID           AccountID    `db:"ID" json:"id"`
	CreatedAt    time.Time    `db:"CreatedAt" json:"createdAt"`
	UpdatedAt    *time.Time   `db:"UpdatedAt" json:"updatedAt"`
	Active       bool         `db:"Active" json:"active"`
	Name         string       `db:"Name" json:"name"`
	DocumentID   string       `db:"DocumentID" json:"documentId"`
	DocumentType DocumentType `db:"DocumentType" json:"documentType"`
	PlanType     Plan         `db:"PlanType" json:"planType"`
	Balance      Money        `db:"Balance" json:"balance"`
	Limit        Money        `db:"Limit" json:"limit"`
	Secret       string       `db:"Secret" json:"-"`
}
