package domain

import "time"

type NotificationCategory string

const (
	CategoryFinancial  NotificationCategory = "financial"
	CategorySales      NotificationCategory = "sales"
	CategoryOperations NotificationCategory = "operations"
	CategoryCustomer   NotificationCategory = "customer"
	CategoryEmployee   NotificationCategory = "employee"
	CategorySystem     NotificationCategory = "system"
)

// NotificationType is the severity class shown next to a notification.
type NotificationType string

const (
	NotificationInfo    NotificationType = "info"
	NotificationSuccess NotificationType = "success"
	NotificationWarning NotificationType = "warning"
	NotificationError   NotificationType = "error"
)

type Notification struct {
	ID        string               `json:"id"`
	Title     string               `json:"title"`
	Message   string               `json:"message"`
	Timestamp time.Time            `json:"timestamp"`
	Read      bool                 `json:"read"`
	Category  NotificationCategory `json:"category"`
	Type      NotificationType     `json:"type"`
}

func (n Notification) RecordID() string { return n.ID }

// MarkRead flags the notification as read. It reports whether the flag
// changed; a read notification never becomes unread again.
func (n *Notification) MarkRead() bool {
	if n.Read {
		return false
	}
	n.Read = true
	return true
}

// CountUnread returns how many notifications have not been read.
func CountUnread(ns []Notification) int {
	var c int
	for _, n := range ns {
		if !n.Read {
			c++
		}
	}
	return c
}
