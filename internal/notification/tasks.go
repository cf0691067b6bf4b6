package notification

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskAgreementCreated = "agreements.created"

const TaskPaymentDue = "payments.due"

type AgreementCreatedPayload struct {
	EmployeeID  string `json:"employeeId"`
	AgreementID string `json:"agreementId"`
}

type PaymentDuePayload struct {
	EmployeeID  string `json:"employeeId"`
	AgreementID string `json:"agreementId"`
	PaymentID   string `json:"paymentId"`
	Sequence    int    `json:"sequence"`
	DueDate     string `json:"dueDate"`
	Amount      string `json:"amount"`
}

func NewAgreementCreatedTask(payload AgreementCreatedPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskAgreementCreated, data), nil
}

func ParseAgreementCreatedPayload(task *asynq.Task) (AgreementCreatedPayload, error) {
	var payload AgreementCreatedPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return AgreementCreatedPayload{}, err
	}
	return payload, nil
}

func NewPaymentDueTask(payload PaymentDuePayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskPaymentDue, data), nil
}

func ParsePaymentDuePayload(task *asynq.Task) (PaymentDuePayload, error) {
	var payload PaymentDuePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return PaymentDuePayload{}, err
	}
	return payload, nil
}
