package sqlinline

const QInsertProcessedPayment = `--sql e598b287-5bd4-41e2-858a-6b51fad9f078
insert into processed_payments(payment_id, donor_name, amount, processed_at)
values ($1::text, $2::text, $3::numeric, now())
on conflict (payment_id) do nothing;
`
