package sqlinline

const QGetFastState = `--sql 9b9c938d-ec37-485d-8e46-ff19d5e2900e
select extra_minutes::text, updated_at
from fast_state
where id = 1;
`

// QAddExtraMinutes saturates at $2 and never lowers a stored value, so a row
// left above the cap by an older configuration stays untouched.
const QAddExtraMinutes = `--sql 92de8ccd-2953-4092-93e7-386afda580bb
insert into fast_state(id, extra_minutes, updated_at)
values (1, least($1::numeric, $2::numeric), now())
on conflict (id) do update
set extra_minutes = greatest(fast_state.extra_minutes, least(fast_state.extra_minutes + $1::numeric, $2::numeric)),
    updated_at = now()
returning extra_minutes::text;
`
