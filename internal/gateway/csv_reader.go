package gateway

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"agency-reconciliation/internal/domain"
)

// Column layout of transactions.csv:
// id,agent_id,content_owner_id,occurred_at,kind,variable_amount,flat_amount
const transactionColumns = 7

// Column layout of payments.csv: id,agent_id,paid_at,amount
const paymentColumns = 4

// readTransactions reads and validates a transactions CSV file.
func readTransactions(path string) ([]domain.Transaction, error) {
	var transactions []domain.Transaction
	err := readCSV(path, transactionColumns, func(record []string) error {
		tx, err := parseTransaction(record)
		if err != nil {
			return err
		}
		if err := tx.Validate(); err != nil {
			return err
		}
		transactions = append(transactions, tx)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return transactions, nil
}

// readPayments reads and validates a payments CSV file.
func readPayments(path string) ([]domain.Payment, error) {
	var payments []domain.Payment
	err := readCSV(path, paymentColumns, func(record []string) error {
		p, err := parsePayment(record)
		if err != nil {
			return err
		}
		if err := p.Validate(); err != nil {
			return err
		}
		payments = append(payments, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return payments, nil
}

// readCSV opens path, skips the header and hands every record to fn.
func readCSV(path string, columns int, fn func(record []string) error) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = columns
	reader.TrimLeadingSpace = true
	// Skip header
	if _, err := reader.Read(); err != nil {
		return fmt.Errorf("failed to read header from %s: %w", path, err)
	}

	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return fmt.Errorf("error reading record from %s: %w", path, err)
		}
		if err := fn(record); err != nil {
			return fmt.Errorf("%s line %d: %w", path, line, err)
		}
	}
	return nil
}

func parseTransaction(record []string) (domain.Transaction, error) {
	id, err := parseUUID("id", record[0])
	if err != nil {
		return domain.Transaction{}, err
	}
	agentID, err := parseUUID("agent_id", record[1])
	if err != nil {
		return domain.Transaction{}, err
	}
	ownerID, err := parseUUID("content_owner_id", record[2])
	if err != nil {
		return domain.Transaction{}, err
	}
	occurredAt, err := time.Parse(time.RFC3339, record[3])
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("could not parse occurred_at '%s': %w", record[3], err)
	}
	variable, err := parseMoney("variable_amount", record[5])
	if err != nil {
		return domain.Transaction{}, err
	}
	flat, err := parseMoney("flat_amount", record[6])
	if err != nil {
		return domain.Transaction{}, err
	}

	return domain.Transaction{
		ID:             id,
		AgentID:        agentID,
		ContentOwnerID: ownerID,
		OccurredAt:     occurredAt,
		Kind:           domain.Kind(strings.ToUpper(record[4])),
		VariableAmount: variable,
		FlatAmount:     flat,
	}, nil
}

func parsePayment(record []string) (domain.Payment, error) {
	id, err := parseUUID("id", record[0])
	if err != nil {
		return domain.Payment{}, err
	}
	agentID, err := parseUUID("agent_id", record[1])
	if err != nil {
		return domain.Payment{}, err
	}
	paidAt, err := time.Parse(time.RFC3339, record[2])
	if err != nil {
		return domain.Payment{}, fmt.Errorf("could not parse paid_at '%s': %w", record[2], err)
	}
	amount, err := parseMoney("amount", record[3])
	if err != nil {
		return domain.Payment{}, err
	}

	return domain.Payment{ID: id, AgentID: agentID, PaidAt: paidAt, Amount: amount}, nil
}

func parseUUID(field, s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("could not parse %s '%s': %w", field, s, err)
	}
	return id, nil
}

// parseMoney treats an empty cell as zero.
func parseMoney(field, s string) (decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("could not parse %s '%s': %w", field, s, err)
	}
	return d, nil
}
