package queries

const paymentColumns = `
			id,
			payment_code,
			payment_type,
			reference_id,
			appointment_id,
			prescription_id,
			parent_payment_id,
			amount,
			status,
			payment_method,
			payment_url,
			transaction_id,
			description,
			metadata,
			created_at,
			updated_at,
			expired_at,
			paid_at
`

const (
	InsertPayment = `
		INSERT INTO payments (
			payment_code,
			payment_type,
			reference_id,
			appointment_id,
			prescription_id,
			parent_payment_id,
			amount,
			status,
			payment_method,
			payment_url,
			transaction_id,
			description,
			metadata,
			created_at,
			updated_at,
			expired_at,
			paid_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id
	`

	UpdatePayment = `
		UPDATE payments SET
			appointment_id = $2,
			parent_payment_id = $3,
			amount = $4,
			status = $5,
			payment_method = $6,
			payment_url = $7,
			transaction_id = $8,
			description = $9,
			metadata = $10,
			updated_at = $11,
			expired_at = $12,
			paid_at = $13
		WHERE id = $1 AND status = $14
	`

	GetPaymentByID = `SELECT` + paymentColumns + `FROM payments WHERE id = $1`

	GetPaymentByCode = `SELECT` + paymentColumns + `FROM payments WHERE payment_code = $1`

	GetPaymentsByCodes = `SELECT` + paymentColumns + `FROM payments WHERE payment_code = ANY($1) ORDER BY id`

	GetLatestPaymentByReferenceAndType = `SELECT` + paymentColumns + `FROM payments
		WHERE reference_id = $1 AND payment_type = $2
		ORDER BY created_at DESC, id DESC
		LIMIT 1`

	GetLatestPaymentByReference = `SELECT` + paymentColumns + `FROM payments
		WHERE reference_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT 1`

	GetLatestPaymentByAppointmentAndType = `SELECT` + paymentColumns + `FROM payments
		WHERE appointment_id = $1 AND payment_type = $2
		ORDER BY created_at DESC, id DESC
		LIMIT 1`

	GetLatestPaymentByPrescription = `SELECT` + paymentColumns + `FROM payments
		WHERE prescription_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT 1`

	GetPaymentsByAppointment = `SELECT` + paymentColumns + `FROM payments
		WHERE appointment_id = $1 AND payment_type <> 'COMPOSITE_PAYMENT'
		ORDER BY created_at ASC, id ASC`

	GetPaymentsByParentID = `SELECT` + paymentColumns + `FROM payments
		WHERE parent_payment_id = $1
		ORDER BY id`

	GetOutstandingPaymentsForComposite = `SELECT` + paymentColumns + `FROM payments
		WHERE reference_id = ANY($1)
			AND status = ANY($2)
			AND parent_payment_id IS NULL
			AND payment_type <> 'COMPOSITE_PAYMENT'
		ORDER BY created_at ASC, id ASC`

	GetPaymentsCreatedBetween = `SELECT` + paymentColumns + `FROM payments
		WHERE created_at >= $1 AND created_at < $2
			AND ($3::text = '' OR status = $3::text)
		ORDER BY created_at DESC, id DESC`

	GetExpirablePayments = `SELECT` + paymentColumns + `FROM payments
		WHERE status IN ('PENDING', 'PROCESSING')
			AND parent_payment_id IS NULL
			AND expired_at IS NOT NULL
			AND expired_at < $1
		ORDER BY expired_at ASC
		LIMIT $2`

	// SearchPayments and CountPayments share the same optional filters;
	// an empty string or NULL argument disables a filter.
	SearchPayments = `SELECT` + paymentColumns + `FROM payments
		WHERE ($1::timestamptz IS NULL OR created_at >= $1)
			AND ($2::timestamptz IS NULL OR created_at <= $2)
			AND ($3::text = '' OR status = $3::text)
			AND ($4::text = '' OR payment_method = $4::text)
			AND ($5::text = '' OR payment_type = $5::text)
		ORDER BY created_at DESC, id DESC
		LIMIT $6 OFFSET $7`

	CountPayments = `
		SELECT COUNT(*) FROM payments
		WHERE ($1::timestamptz IS NULL OR created_at >= $1)
			AND ($2::timestamptz IS NULL OR created_at <= $2)
			AND ($3::text = '' OR status = $3::text)
			AND ($4::text = '' OR payment_method = $4::text)
			AND ($5::text = '' OR payment_type = $5::text)
	`
)
