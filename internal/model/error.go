package model

import "errors"

var ErrorAccountNotFoundOrInactive = errors.New("account not found or inactive")
var ErrorInsufficientBalance = errors.New("insufficient balance")
var ErrorLimitExceeded = errors.New("limit exceeded")
var ErrorMessageNotFound = errors.New("message not found")
var ErrorConversationNotFound = errors.New("conversation not found")
var ErrorJobNotFound = errors.New("job not found")
var ErrorDocumentInUse = errors.New("document already registered")
var ErrorInvalidCredentials = errors.New("invalid credentials")
