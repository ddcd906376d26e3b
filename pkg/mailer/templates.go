package mailer

// Template names accepted by Sender.Send.
const (
	TemplateVerifyEmail   = "verify_email"
	TemplateResetPassword = "reset_password"
)

// Mail templates use inline styles for client compatibility. Data keys:
// Name, ActionURL, Token, TTL.
var builtinTemplates = map[string]string{
	TemplateVerifyEmail: `<!DOCTYPE html>
<html lang="en">
<head>
	<meta http-equiv="Content-Type" content="text/html; charset=UTF-8" />
	<meta name="viewport" content="width=device-width, initial-scale=1.0" />
	<title>Verify your email address</title>
</head>
<body style="margin: 0; padding: 0; font-family: -apple-system, 'Segoe UI', Roboto, sans-serif; background-color: #f7f9fc;">
	<table border="0" cellpadding="0" cellspacing="0" width="100%" style="border-collapse: collapse;">
		<tr>
			<td style="padding: 40px 0;">
				<table align="center" border="0" cellpadding="0" cellspacing="0" width="600" style="border-collapse: collapse; background-color: #1f6f5c; border-radius: 8px 8px 0 0;">
					<tr>
						<td align="center" style="padding: 30px 0; color: #ffffff;">
							<h1 style="margin: 0; font-size: 28px; font-weight: 700;">Verify your email</h1>
						</td>
					</tr>
				</table>
				<table align="center" border="0" cellpadding="0" cellspacing="0" width="600" style="border-collapse: collapse; background-color: #ffffff;">
					<tr>
						<td style="padding: 40px 30px; color: #333333; font-size: 16px; line-height: 1.6;">
							<p style="margin-top: 0; margin-bottom: 20px;">Hi {{ .Name | title }},</p>
							<p style="margin-top: 0; margin-bottom: 20px;">Thanks for signing up for Aegis. Confirm your email address by clicking the button below.</p>
							<table border="0" cellpadding="0" cellspacing="0" align="center" style="border-collapse: separate; border-radius: 4px; margin: 25px auto;">
								<tr>
									<td align="center" style="background-color: #1f6f5c; border-radius: 4px;">
										<a href="{{ .ActionURL }}" target="_blank" style="display: inline-block; color: #ffffff; font-size: 16px; font-weight: bold; text-decoration: none; padding: 12px 30px;">Verify email</a>
									</td>
								</tr>
							</table>
							<p style="margin-top: 20px; margin-bottom: 20px;">If the button does not work, copy this code into the app:</p>
							<p style="margin: 0 0 20px 0; text-align: center; background-color: #f0f5f3; border-radius: 8px; padding: 15px; font-weight: bold; word-break: break-all;">{{ .Token }}</p>
							<p style="margin-top: 20px; margin-bottom: 20px;">This link expires in {{ .TTL }}.</p>
							<p style="margin-top: 0; margin-bottom: 0;">If you did not create an account, you can safely ignore this email.</p>
						</td>
					</tr>
				</table>
				<table align="center" border="0" cellpadding="0" cellspacing="0" width="600" style="border-collapse: collapse; background-color: #eef2f0; border-radius: 0 0 8px 8px;">
					<tr>
						<td align="center" style="padding: 20px; color: #666666; font-size: 12px;">
							<p style="margin: 0;">&copy; {{ now | date "2006" }} Aegis. This mailbox is not monitored.</p>
						</td>
					</tr>
				</table>
			</td>
		</tr>
	</table>
</body>
</html>`,

	TemplateResetPassword: `<!DOCTYPE html>
<html lang="en">
<head>
	<meta http-equiv="Content-Type" content="text/html; charset=UTF-8" />
	<meta name="viewport" content="width=device-width, initial-scale=1.0" />
	<title>Reset your password</title>
</head>
<body style="margin: 0; padding: 0; font-family: -apple-system, 'Segoe UI', Roboto, sans-serif; background-color: #f7f9fc;">
	<table border="0" cellpadding="0" cellspacing="0" width="100%" style="border-collapse: collapse;">
		<tr>
			<td style="padding: 40px 0;">
				<table align="center" border="0" cellpadding="0" cellspacing="0" width="600" style="border-collapse: collapse; background-color: #1f6f5c; border-radius: 8px 8px 0 0;">
					<tr>
						<td align="center" style="padding: 30px 0; color: #ffffff;">
							<h1 style="margin: 0; font-size: 28px; font-weight: 700;">Reset your password</h1>
						</td>
					</tr>
				</table>
				<table align="center" border="0" cellpadding="0" cellspacing="0" width="600" style="border-collapse: collapse; background-color: #ffffff;">
					<tr>
						<td style="padding: 40px 30px; color: #333333; font-size: 16px; line-height: 1.6;">
							<p style="margin-top: 0; margin-bottom: 20px;">Hi {{ .Name | title }},</p>
							<p style="margin-top: 0; margin-bottom: 20px;">We received a request to reset the password for your Aegis account. Click the button below to choose a new password.</p>
							<table border="0" cellpadding="0" cellspacing="0" align="center" style="border-collapse: separate; border-radius: 4px; margin: 25px auto;">
								<tr>
									<td align="center" style="background-color: #1f6f5c; border-radius: 4px;">
										<a href="{{ .ActionURL }}" target="_blank" style="display: inline-block; color: #ffffff; font-size: 16px; font-weight: bold; text-decoration: none; padding: 12px 30px;">Reset password</a>
									</td>
								</tr>
							</table>
							<p style="margin-top: 20px; margin-bottom: 20px;">If the button does not work, copy this code into the app:</p>
							<p style="margin: 0 0 20px 0; text-align: center; background-color: #f0f5f3; border-radius: 8px; padding: 15px; font-weight: bold; word-break: break-all;">{{ .Token }}</p>
							<p style="margin-top: 20px; margin-bottom: 20px;">This link expires in {{ .TTL }}. It can be used once.</p>
							<p style="margin-top: 0; margin-bottom: 0;">If you did not request a reset, your password is unchanged and you can ignore this email.</p>
						</td>
					</tr>
				</table>
				<table align="center" border="0" cellpadding="0" cellspacing="0" width="600" style="border-collapse: collapse; background-color: #eef2f0; border-radius: 0 0 8px 8px;">
					<tr>
						<td align="center" style="padding: 20px; color: #666666; font-size: 12px;">
							<p style="margin: 0;">&copy; {{ now | date "2006" }} Aegis. This mailbox is not monitored.</p>
						</td>
					</tr>
				</table>
			</td>
		</tr>
	</table>
</body>
</html>`,
}
