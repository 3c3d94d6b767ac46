// Package ofx converts OFX/QFX bank statements into ledger transactions.
package ofx

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/aclindsa/ofxgo"

	"github.com/hollisb/centsible/internal/model"
)

// Parser implements OFX/QFX file parsing.
type Parser struct{}

// NewParser creates a new OFX parser.
func NewParser() *Parser {
	return &Parser{}
}

var (
	severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	// Opening SGML tags missing their closing angle bracket.
	tagFixRegex = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// preprocess fixes common formatting issues in OFX files before handing
// them to ofxgo.
func (p *Parser) preprocess(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)
	return tagFixRegex.ReplaceAllString(content, "$1>")
}

// ParseFile parses an OFX/QFX file and returns ledger transactions.
// Imported entries carry the Uncategorized placeholder category; the
// user assigns real categories afterwards. The returned transactions
// have no ids; the store assigns them on insert.
func (p *Parser) ParseFile(reader io.Reader) ([]model.Transaction, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(p.preprocess(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var transactions []model.Transaction
	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok && stmt.BankTranList != nil {
			for _, ofxTxn := range stmt.BankTranList.Transactions {
				transactions = append(transactions, p.convert(ofxTxn))
			}
		}
	}
	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok && stmt.BankTranList != nil {
			for _, ofxTxn := range stmt.BankTranList.Transactions {
				transactions = append(transactions, p.convert(ofxTxn))
			}
		}
	}

	return transactions, nil
}

// convert maps one OFX transaction to the ledger model. OFX uses signed
// amounts (negative for debits); the ledger stores positive amounts with
// an explicit type.
func (p *Parser) convert(ofxTxn ofxgo.Transaction) model.Transaction {
	amount, _ := ofxTxn.TrnAmt.Float64()
	txnType := model.TypeIncome
	if amount < 0 {
		amount = -amount
		txnType = model.TypeExpense
	}

	return model.Transaction{
		Date:        ofxTxn.DtPosted.Time,
		Description: p.describe(ofxTxn),
		CategoryID:  model.UncategorizedID,
		Type:        txnType,
		Amount:      amount,
	}
}

// describe picks the most useful description from the OFX fields:
// payee name, then NAME, with MEMO as a fallback.
func (p *Parser) describe(ofxTxn ofxgo.Transaction) string {
	if ofxTxn.Payee != nil && ofxTxn.Payee.Name != "" {
		return strings.TrimSpace(string(ofxTxn.Payee.Name))
	}
	name := strings.TrimSpace(string(ofxTxn.Name))
	if name == "" {
		name = strings.TrimSpace(string(ofxTxn.Memo))
	}
	return name
}
